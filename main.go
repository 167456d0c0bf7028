/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/opengeospatial/ets-ogcapi-features10/cmd"

func main() {
	cmd.Execute()
}
