package main

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/multiformats/go-multibase"
	gomultihash "github.com/multiformats/go-multihash"
	"github.com/zeebo/assert"
	"golang.org/x/crypto/sha3"

	"github.com/zeebo/xhash/blake2b"
	"github.com/zeebo/xhash/blake3"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestStdin(t *testing.T) {
	out, err := execute(t, "hello world")
	assert.NoError(t, err)

	sum := blake3.Sum256([]byte("hello world"))
	assert.Equal(t, out, hex.EncodeToString(sum[:])+"  -\n")
}

func TestFiles(t *testing.T) {
	a := writeFile(t, "a", "some file contents")
	empty := writeFile(t, "empty", "")

	out, err := execute(t, "", "--algo", "sha3-256", a, empty)
	assert.NoError(t, err)

	sa, se := sha3.Sum256([]byte("some file contents")), sha3.Sum256(nil)
	assert.Equal(t, out, ""+
		hex.EncodeToString(sa[:])+"  "+a+"\n"+
		hex.EncodeToString(se[:])+"  "+empty+"\n")
}

func TestMissingFile(t *testing.T) {
	a := writeFile(t, "a", "x")
	out, err := execute(t, "", a, filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	sum := blake3.Sum256([]byte("x"))
	assert.Equal(t, out, hex.EncodeToString(sum[:])+"  "+a+"\n")
}

func TestSizeAndKey(t *testing.T) {
	key := []byte("a secret key")
	out, err := execute(t, "data", "-a", "blake2b", "-s", "20", "-k", hex.EncodeToString(key))
	assert.NoError(t, err)

	d, err := blake2b.New(&blake2b.Config{Size: 20, Key: key})
	assert.NoError(t, err)
	_, _ = d.WriteString("data")
	assert.Equal(t, out, hex.EncodeToString(d.Sum(nil))+"  -\n")
}

func TestEncoding(t *testing.T) {
	out, err := execute(t, "abc", "-e", "base64")
	assert.NoError(t, err)

	sum := blake3.Sum256([]byte("abc"))
	want, err := multibase.Encode(multibase.Base64, sum[:])
	assert.NoError(t, err)
	assert.Equal(t, out, want+"  -\n")
}

func TestMultihash(t *testing.T) {
	out, err := execute(t, "abc", "-a", "keccak-256", "-m", "-e", "base58btc")
	assert.NoError(t, err)

	mh, err := gomultihash.Sum([]byte("abc"), gomultihash.KECCAK_256, -1)
	assert.NoError(t, err)
	want, err := multibase.Encode(multibase.Base58BTC, mh)
	assert.NoError(t, err)
	assert.Equal(t, out, want+"  -\n")
}

func TestBadOptions(t *testing.T) {
	for _, args := range [][]string{
		{"-a", "md5"},
		{"-k", "not hex"},
		{"-a", "sha3-256", "-k", "00"},
		{"-a", "sha3-256", "-s", "16"},
		{"-e", "base99"},
		{"-a", "keccak-288", "-m"},
		{"-a", "blake3", "-m", "-k", "00"},
	} {
		out, err := execute(t, "", args...)
		assert.Error(t, err)
		assert.Equal(t, out, "")
	}
}

func TestConfigFile(t *testing.T) {
	cfg := writeFile(t, "xhashsum.yaml", "algo: sha3-512\nencoding: base16\n")
	out, err := execute(t, "abc", "--config", cfg)
	assert.NoError(t, err)

	sum := sha3.Sum512([]byte("abc"))
	assert.Equal(t, out, "f"+hex.EncodeToString(sum[:])+"  -\n")

	_, err = execute(t, "", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestHomeConfig(t *testing.T) {
	home := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(home, ".xhashsum.yaml"), []byte("algo: sha3-224\n"), 0o644))

	var out bytes.Buffer
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	cmd := newRootCmd()
	cmd.SetArgs([]string{})
	cmd.SetIn(strings.NewReader("abc"))
	cmd.SetOut(&out)
	cmd.SetErr(new(bytes.Buffer))
	assert.NoError(t, cmd.Execute())

	sum := sha3.Sum224([]byte("abc"))
	assert.Equal(t, out.String(), hex.EncodeToString(sum[:])+"  -\n")
}

func TestEnvironment(t *testing.T) {
	t.Setenv("XHASHSUM_ALGO", "sha3-384")
	out, err := execute(t, "abc")
	assert.NoError(t, err)

	sum := sha3.Sum384([]byte("abc"))
	assert.Equal(t, out, hex.EncodeToString(sum[:])+"  -\n")

	// flags win over the environment
	out, err = execute(t, "abc", "-a", "sha3-256")
	assert.NoError(t, err)
	sum256 := sha3.Sum256([]byte("abc"))
	assert.Equal(t, out, hex.EncodeToString(sum256[:])+"  -\n")
}
