package main

import "github.com/bkerly/Mask-Fit/cmd"

func main() {
	cmd.Execute()
}
