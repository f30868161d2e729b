// Command hdp inspects HDF4 files: it lists datasets, attributes and the
// Vgroup hierarchy, and dumps dataset contents as JSON.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	jsoniter "github.com/json-iterator/go"

	"github.com/robert-malhotra/go-hdf4/hdf4"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	app    = kingpin.New("hdp", "Inspect HDF4 scientific dataset files.")
	memory = app.Flag("memory", "Use the pure-Go memory backend instead of the native library.").Bool()

	infoCmd  = app.Command("info", "List datasets, attributes and the group hierarchy.")
	infoFile = infoCmd.Arg("file", "File to inspect.").Required().String()

	dumpCmd  = app.Command("dump", "Dump dataset contents as JSON.")
	dumpFile = dumpCmd.Arg("file", "File to dump.").Required().String()
	dumpName = dumpCmd.Flag("dataset", "Dump only the named dataset.").String()
)

func main() {
	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	var opts []hdf4.FileOption
	if *memory {
		opts = append(opts, hdf4.WithBackend(hdf4.BackendMemory))
	}

	var err error
	switch cmd {
	case infoCmd.FullCommand():
		err = runInfo(*infoFile, opts)
	case dumpCmd.FullCommand():
		err = runDump(*dumpFile, *dumpName, opts)
	}
	if err != nil {
		app.Fatalf("%v", err)
	}
}

func runInfo(path string, opts []hdf4.FileOption) error {
	f, err := hdf4.Open(path, opts...)
	if err != nil {
		return err
	}
	defer f.Close()

	if names := f.Attributes(); len(names) > 0 {
		fmt.Println("global attributes:")
		for _, name := range names {
			a, err := f.Attr(name)
			if err != nil {
				return err
			}
			fmt.Printf("  %s = %s\n", name, formatAttr(a))
		}
	}

	fmt.Printf("datasets: %d\n", len(f.Datasets()))
	for _, name := range f.Datasets() {
		ds, err := f.Dataset(name)
		if err != nil {
			return err
		}
		shape, err := ds.CurrentShape()
		if err != nil {
			return err
		}
		elems := 1
		for _, n := range shape {
			elems *= n
		}
		size := uint64(elems * ds.Type().Size())
		fmt.Printf("  %s  %s %s  %s\n", name, ds.Type(), formatShape(ds.Shape(), shape), humanize.Bytes(size))
		for _, attrName := range ds.Attributes() {
			a, err := ds.Attr(attrName)
			if err != nil {
				return err
			}
			fmt.Printf("    %s = %s\n", attrName, formatAttr(a))
		}
	}

	printedHeader := false
	return f.Walk(func(path string, m hdf4.Member) error {
		if !printedHeader {
			fmt.Println("groups:")
			printedHeader = true
		}
		kind := "object"
		switch m.Tag {
		case hdf4.TagVGroup:
			kind = "vgroup"
		case hdf4.TagVData:
			kind = "vdata"
		case hdf4.TagSDS:
			kind = "dataset"
		}
		fmt.Printf("  %s  (%s ref %d)\n", path, kind, m.Ref)
		return nil
	})
}

func formatShape(declared, current []int) string {
	parts := make([]string, len(declared))
	for i, n := range declared {
		if n == hdf4.Unlimited {
			parts[i] = fmt.Sprintf("%d+", current[i])
		} else {
			parts[i] = humanize.Comma(int64(n))
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatAttr(a *hdf4.Attribute) string {
	if text, ok := a.Text(); ok {
		return fmt.Sprintf("%q", text)
	}
	out, err := json.Marshal(a.Value())
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	return string(out)
}

type datasetDump struct {
	Name       string                 `json:"name"`
	Type       string                 `json:"type"`
	Shape      []int                  `json:"shape"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`
	Values     interface{}            `json:"values"`
}

func runDump(path, only string, opts []hdf4.FileOption) error {
	f, err := hdf4.Open(path, opts...)
	if err != nil {
		return err
	}
	defer f.Close()

	names := f.Datasets()
	if only != "" {
		names = []string{only}
	}
	dumps := make([]datasetDump, 0, len(names))
	for _, name := range names {
		ds, err := f.Dataset(name)
		if err != nil {
			return err
		}
		shape, err := ds.CurrentShape()
		if err != nil {
			return err
		}
		values, err := ds.Values()
		if err != nil {
			return err
		}
		dump := datasetDump{
			Name:   ds.Name(),
			Type:   ds.Type().String(),
			Shape:  shape,
			Values: values,
		}
		if attrs := ds.Attributes(); len(attrs) > 0 {
			dump.Attributes = make(map[string]interface{}, len(attrs))
			for _, attrName := range attrs {
				a, err := ds.Attr(attrName)
				if err != nil {
					return err
				}
				dump.Attributes[attrName] = a.Value()
			}
		}
		dumps = append(dumps, dump)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(dumps)
}
