// Command mddtool is a small demonstration CLI over the mdd package: it
// builds a string-vector set or interleaved relation from newline-delimited
// input and exercises count, dump, closure, and relabel against it.
package main

import "github.com/zzenonn/go-mdd/cmd/mddtool/cmd"

func main() {
	cmd.Execute()
}
