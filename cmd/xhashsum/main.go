// Command xhashsum prints the digests of files using any algorithm of this
// module.
package main

func main() {
	Execute()
}
