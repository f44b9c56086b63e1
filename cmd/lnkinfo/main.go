// Copyright 2021 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/saferwall/lnk"
	"github.com/spf13/cobra"
)

var (
	verbose  bool
	codepage uint32
)

func isDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func dumpOne(path string) {
	if verbose {
		log.Printf("processing %s", path)
	}

	f := lnk.New()
	defer f.Free()

	opts := &lnk.Options{}
	if codepage != 0 {
		opts.ASCIICodepage = codepage
	}

	if err := f.Open(path, opts); err != nil {
		log.Printf("%s: %v", path, err)
		return
	}
	defer f.Close()

	printSummary(f, path)
}

func run(cmd *cobra.Command, args []string) {
	target := args[0]

	if !isDirectory(target) {
		dumpOne(target)
		return
	}

	var files []string
	filepath.Walk(target, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	for _, path := range files {
		dumpOne(path)
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "lnkinfo <path>",
		Short: "A Windows Shell Link (.lnk) file parser",
		Long:  "Prints the structure of a Windows Shell Link (.lnk) file",
		Args:  cobra.MinimumNArgs(1),
		Run:   run,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("lnkinfo version 0.1.0")
		},
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().Uint32VarP(&codepage, "codepage", "c", 0, "ASCII codepage for non-Unicode strings (default 1252)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
