package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"

	construct "github.com/constructkit/construct"
	"github.com/constructkit/construct/schemayaml"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "check":
		checkCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "construct CLI\n\nUsage:\n  construct check -schema schema.yaml [-name SchemaName] [-in data.json]\n\nReads the JSON payload (stdin when -in is omitted), builds a record against\nthe YAML-defined schema, and prints the record or the error report as JSON.")
}

func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	var schemaPath, name, in string
	fs.StringVar(&schemaPath, "schema", "", "YAML schema definition file")
	fs.StringVar(&name, "name", "", "schema name inside the bundle (default: first document)")
	fs.StringVar(&in, "in", "", "JSON payload file (default: stdin)")
	_ = fs.Parse(args)
	if schemaPath == "" {
		fs.Usage()
		os.Exit(2)
	}

	defs, err := os.ReadFile(schemaPath)
	if err != nil {
		fatalf("read schema: %v", err)
	}
	reg := schemayaml.NewRegistry()
	var schema *construct.Schema
	if name != "" {
		schema, err = schemayaml.ImportNamed(defs, name, reg)
	} else {
		schema, err = schemayaml.Import(defs, reg)
	}
	if err != nil {
		fatalf("import schema: %v", err)
	}

	payload, err := readPayload(in)
	if err != nil {
		fatalf("read payload: %v", err)
	}

	v, err := schema.MakeAnyJSON(context.Background(), payload)
	if err != nil {
		if report, ok := construct.AsReport(err); ok {
			out, merr := json.MarshalIndent(report, "", "  ")
			if merr != nil {
				fatalf("render report: %v", merr)
			}
			fmt.Fprintf(os.Stderr, "invalid %s:\n%s\n", schema.Name(), out)
			os.Exit(1)
		}
		fatalf("%v", err)
	}

	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatalf("render result: %v", err)
	}
	fmt.Printf("ok %s\n%s\n", schema.Name(), out)
}

func readPayload(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "construct: "+format+"\n", args...)
	os.Exit(1)
}
