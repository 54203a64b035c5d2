/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command databag inspects, converts and syncs data bag files.
//
//	databag [-config path] [-env path] [-version] <command> [args]
//
// Commands:
//
//	types                       list registered payload types
//	inspect <file>              print the entries of a bag file
//	convert -to json|yaml <file> re-encode a bag file to stdout
//	pull <owner>                print the stored bag of owner as JSON
//	push <owner> <file>         store a bag file for owner
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/suparena/databag"
	"github.com/suparena/databag/codec"
	"github.com/suparena/databag/config"
	"github.com/suparena/databag/datastore"
	"github.com/suparena/databag/datastore/ddb"
	"github.com/suparena/databag/errors"
	"github.com/suparena/databag/internal/logging"
	"github.com/suparena/databag/library"
	"github.com/suparena/databag/payload"
	_ "github.com/suparena/databag/payload/builtin"
	"github.com/suparena/databag/registry"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("databag", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "databag.yaml", "path to the YAML config file")
	envPath := fs.String("env", ".env", "path to a dotenv file")
	versionFlag := fs.Bool("version", false, "show version information")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *versionFlag {
		fmt.Fprintln(stdout, databag.GetVersionInfo())
		return 0
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "usage: databag [-config path] [-env path] [-version] <types|inspect|convert|pull|push> [args]")
		return 2
	}

	cfg, err := config.Load(*configPath, *envPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(stderr, "logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	a := &app{cfg: cfg, logger: logger, codec: codec.New(nil), stdout: stdout}
	if err := a.dispatch(ctx, fs.Arg(0), fs.Args()[1:]); err != nil {
		logger.Error("command failed", zap.String("command", fs.Arg(0)), zap.Error(err))
		return 1
	}
	return 0
}

type app struct {
	cfg    *config.Config
	logger *zap.Logger
	codec  *codec.Codec
	stdout io.Writer
	store  datastore.DataStore
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "types":
		return a.types()
	case "inspect":
		if len(args) != 1 {
			return errors.NewValidationError("args", "usage: inspect <file>")
		}
		return a.inspect(args[0])
	case "convert":
		return a.convert(args)
	case "pull":
		if len(args) != 1 {
			return errors.NewValidationError("args", "usage: pull <owner>")
		}
		return a.pull(ctx, args[0])
	case "push":
		if len(args) != 2 {
			return errors.NewValidationError("args", "usage: push <owner> <file>")
		}
		return a.push(ctx, args[0], args[1])
	default:
		return errors.NewValidationError("command", fmt.Sprintf("unknown command %q", cmd))
	}
}

func (a *app) types() error {
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tID\tNAME")
	for i, t := range a.codec.Registry().ListTypes() {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i, t.ID, t.DisplayName)
	}
	return tw.Flush()
}

func (a *app) inspect(path string) error {
	bag, err := a.readBag(path)
	if err != nil {
		return err
	}
	reg := a.codec.Registry()
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tKEY\tTYPE\tFIELDS")
	for i, e := range bag.Entries() {
		typeID, fields := "-", "-"
		if !payload.IsAbsent(e.Payload) {
			if id, ok := reg.TypeIDOf(e.Payload); ok {
				typeID = id
			}
			raw, err := json.Marshal(e.Payload)
			if err != nil {
				return fmt.Errorf("entry %d: %w", i, err)
			}
			fields = string(raw)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, e.Key, typeID, fields)
	}
	return tw.Flush()
}

func (a *app) convert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	to := fs.String("to", "json", "output format: json or yaml")
	if err := fs.Parse(args); err != nil {
		return errors.NewValidationError("args", err.Error())
	}
	if fs.NArg() != 1 {
		return errors.NewValidationError("args", "usage: convert -to json|yaml <file>")
	}

	bag, err := a.readBag(fs.Arg(0))
	if err != nil {
		return err
	}
	var out []byte
	switch strings.ToLower(*to) {
	case "json":
		out, err = a.codec.MarshalJSON(bag)
	case "yaml", "yml":
		out, err = a.codec.MarshalYAML(bag)
	default:
		return errors.NewValidationError("to", fmt.Sprintf("unsupported format %q", *to))
	}
	if err != nil {
		return err
	}
	_, err = a.stdout.Write(append(out, '\n'))
	return err
}

func (a *app) pull(ctx context.Context, owner string) error {
	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	lib := library.New(store, library.WithLogger(a.logger))
	bag, err := lib.Open(ctx, owner)
	if err != nil {
		return err
	}
	out, err := a.codec.MarshalJSON(bag)
	if err != nil {
		return err
	}
	_, err = a.stdout.Write(append(out, '\n'))
	return err
}

func (a *app) push(ctx context.Context, owner, path string) error {
	bag, err := a.readBag(path)
	if err != nil {
		return err
	}
	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if err := store.Save(ctx, owner, bag); err != nil {
		return err
	}
	a.logger.Info("bag pushed", zap.String("owner", owner), zap.Int("entries", bag.Len()))
	return nil
}

// readBag decodes a bag file, choosing YAML for .yaml/.yml and JSON otherwise.
func (a *app) readBag(path string) (*databag.Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return a.codec.UnmarshalYAML(data)
	default:
		return a.codec.UnmarshalJSON(data)
	}
}

func (a *app) openStore(ctx context.Context) (datastore.DataStore, error) {
	if a.store != nil {
		return a.store, nil
	}
	switch a.cfg.Store {
	case config.StoreDynamoDB:
		d := a.cfg.DynamoDB
		store, err := ddb.NewDynamodbDataStore(ctx, ddb.ClientConfig{
			Region:    d.Region,
			AccessKey: d.AccessKey,
			SecretKey: d.SecretKey,
			Endpoint:  d.Endpoint,
		}, d.Table,
			ddb.WithKeyTemplates(d.PKTemplate, d.SKTemplate),
			ddb.WithRegistry(registry.Default()),
			ddb.WithLogger(a.logger),
		)
		if err != nil {
			return nil, err
		}
		a.store = store
	default:
		// a memory store would not outlive the process
		return nil, errors.NewValidationError("store", fmt.Sprintf("pull and push need store %q, configured %q", config.StoreDynamoDB, a.cfg.Store))
	}
	return a.store, nil
}
