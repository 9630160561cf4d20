package main

import (
	"fmt"
	"os"

	"nostrprofiles/libraries/profiletool"
)

func main() {
	rootCmd := profiletool.RootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
