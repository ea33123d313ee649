package main

import (
	"encoding/hex"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func Execute() {
	cobra.CheckErr(newRootCmd().Execute())
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "xhashsum [file...]",
		Short: "Print digests of files",
		Long: `xhashsum prints one digest per file, or of standard input when no
files are given. Settings may also come from $HOME/.xhashsum.yaml or from
XHASHSUM_* environment variables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(v, cfgFile); err != nil {
				return err
			}
			initLogging(v, cmd)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(v)
			if err != nil {
				return err
			}
			return run(cmd.OutOrStdout(), cmd.InOrStdin(), opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.xhashsum.yaml)")
	flags.StringP("algo", "a", "blake3", "hash algorithm")
	flags.IntP("size", "s", 0, "digest size in bytes (0 for the algorithm default)")
	flags.StringP("key", "k", "", "hex encoded MAC key")
	flags.String("custom", "", "personalization, customization or derive-key context")
	flags.String("name", "", "cSHAKE function name")
	flags.StringP("encoding", "e", "hex", "output encoding: hex or a multibase encoding name")
	flags.BoolP("multihash", "m", false, "wrap digests in a multihash")
	flags.BoolP("verbose", "v", false, "log debug output")
	bindFlags(v, flags)

	return cmd
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		cobra.CheckErr(v.BindPFlag(f.Name, f))
	})
}

func initConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return errors.Wrap(err, "finding home directory")
		}
		v.AddConfigPath(home)
		v.SetConfigName(".xhashsum")
	}

	// Environment variable support
	v.SetEnvPrefix("xhashsum")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return errors.Wrap(err, "reading config")
		}
	}
	return nil
}

func initLogging(v *viper.Viper, cmd *cobra.Command) {
	logrus.SetOutput(cmd.ErrOrStderr())
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logrus.SetLevel(logrus.WarnLevel)
	if v.GetBool("verbose") {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if used := v.ConfigFileUsed(); used != "" {
		logrus.WithField("file", used).Debug("using config file")
	}
}

type options struct {
	algo      string
	size      int
	key       []byte
	name      []byte
	custom    []byte
	encoding  string
	multihash bool
}

func loadOptions(v *viper.Viper) (*options, error) {
	key, err := hex.DecodeString(v.GetString("key"))
	if err != nil {
		return nil, errors.Wrap(err, "decoding key")
	}
	return &options{
		algo:      v.GetString("algo"),
		size:      v.GetInt("size"),
		key:       key,
		name:      []byte(v.GetString("name")),
		custom:    []byte(v.GetString("custom")),
		encoding:  v.GetString("encoding"),
		multihash: v.GetBool("multihash"),
	}, nil
}
