package main

import (
	"fmt"

	"github.com/saferwall/lnk"
)

// printSummary renders the shortcut's interesting fields, consulting only
// the accessor surface in package lnk — never reaching into parsed
// records directly, the same separation saferwall-pe/cmd/pedumper.go keeps
// between peparser's exported fields and the CLI's presentation logic.
func printSummary(f *lnk.File, path string) {
	fmt.Printf("=== %s ===\n", path)

	header, err := f.Header()
	if err != nil {
		fmt.Println("header:", err)
		return
	}
	fmt.Printf("attributes: %s\n", header.FileAttributeFlags)
	fmt.Printf("show command: %s\n", header.ShowCommand)

	if desc, ok, _ := f.Description(); ok {
		fmt.Printf("description: %s\n", desc)
	}
	if rel, ok, _ := f.RelativePath(); ok {
		fmt.Printf("relative path: %s\n", rel)
	}
	if wd, ok, _ := f.WorkingDirectory(); ok {
		fmt.Printf("working directory: %s\n", wd)
	}
	if args, ok, _ := f.CommandLineArguments(); ok {
		fmt.Printf("arguments: %s\n", args)
	}
	if icon, ok, _ := f.IconLocation(); ok {
		fmt.Printf("icon location: %s\n", icon)
	}

	if refersToFile, _ := f.LinkRefersToFile(); refersToFile {
		loc, _, _ := f.LocationInformation()
		if loc.HasVolumeInfo {
			fmt.Printf("drive type: %s, serial: %08X\n", loc.DriveType, loc.DriveSerialNumber)
		}
		if loc.LocalPath != "" || loc.LocalPathUnicode != "" {
			fmt.Printf("local path: %s\n", firstNonEmpty(loc.LocalPathUnicode, loc.LocalPath))
		}
		if loc.HasNetworkInfo {
			fmt.Printf("network share: %s\n", loc.NetworkShareName)
		}
	}

	if hasTracking, _ := f.HasDistributedLinkTrackingData(); hasTracking {
		tracker, _ := f.TrackerBlock()
		fmt.Printf("machine id: %s\n", tracker.MachineID)
	}

	count, _ := f.DataBlockCount()
	fmt.Printf("extra data blocks: %d\n", count)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
