/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/ssargent/flashkit/cmd/flashkit/cmd"

func main() {
	cmd.Execute()
}
