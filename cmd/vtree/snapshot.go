package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/snapshot"
	"github.com/vango-dev/vtree/pkg/vdom"
)

func snapshotCmd(g *globals) *cobra.Command {
	var (
		app       appFlags
		name      string
		overrides config.SnapshotConfig
		pathStyle bool
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render the playground and store the HTML",
		Long: `Render the playground document and upload the HTML to the
configured snapshot store: an S3 bucket (AWS, MinIO, LocalStack) or a
local directory.

Credentials come from the standard AWS chain (environment, AWS_PROFILE
and shared config files, SSO, instance roles).

Examples:
  vtree snapshot --bucket my-snaps
  vtree snapshot --bucket snaps --endpoint http://localhost:9000 --path-style
  vtree snapshot --dir ./out --name nightly`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			sc := mergeSnapshot(cfg.Snapshot, overrides)
			if cmd.Flags().Changed("path-style") {
				sc.UsePathStyle = pathStyle
			}
			cfg.Snapshot = sc
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := newLogger(cfg.Log, cmd.ErrOrStderr())
			store, err := openStore(cmd.Context(), sc)
			if err != nil {
				return err
			}

			snap, err := snapshot.Render(app.tree(), dom.HTMLOptions{}, vdom.WithLogger(logger))
			if err != nil {
				return err
			}
			key, err := snapshot.NewUploader(store, logger).Upload(cmd.Context(), name, snap)
			if err != nil {
				return errors.New("C021").Wrap(err)
			}
			success(cmd.OutOrStdout(), "stored %s (%d bytes)", describeStore(sc, key), len(snap.HTML))
			return nil
		},
	}

	app.register(cmd)
	f := cmd.Flags()
	f.StringVarP(&name, "name", "n", "playground", "Snapshot name (key prefix)")
	f.StringVar(&overrides.Dir, "dir", "", "Store snapshots in this directory")
	f.StringVar(&overrides.Bucket, "bucket", "", "S3 bucket")
	f.StringVar(&overrides.Prefix, "prefix", "", "S3 key prefix")
	f.StringVar(&overrides.Region, "region", "", "S3 region")
	f.StringVar(&overrides.Endpoint, "endpoint", "", "S3 endpoint override")
	f.BoolVar(&pathStyle, "path-style", false, "Use path-style S3 addressing")

	return cmd
}

// mergeSnapshot applies non-empty flag values over the file settings. A
// --dir flag replaces a configured bucket and the reverse.
func mergeSnapshot(base, flags config.SnapshotConfig) config.SnapshotConfig {
	if flags.Dir != "" {
		base.Dir = flags.Dir
		base.Bucket = ""
	}
	if flags.Bucket != "" {
		base.Bucket = flags.Bucket
		base.Dir = ""
	}
	if flags.Prefix != "" {
		base.Prefix = flags.Prefix
	}
	if flags.Region != "" {
		base.Region = flags.Region
	}
	if flags.Endpoint != "" {
		base.Endpoint = flags.Endpoint
	}
	return base
}

func openStore(ctx context.Context, sc config.SnapshotConfig) (snapshot.Store, error) {
	switch {
	case sc.Dir != "":
		store, err := snapshot.NewDiskStore(sc.Dir)
		if err != nil {
			return nil, errors.New("C021").Wrap(err)
		}
		return store, nil
	case sc.Bucket != "":
		client, err := snapshot.NewS3Client(ctx, snapshot.S3Options{
			Region:       sc.Region,
			Endpoint:     sc.Endpoint,
			UsePathStyle: sc.UsePathStyle,
		})
		if err != nil {
			return nil, errors.New("C021").Wrap(err)
		}
		return snapshot.NewS3Store(client, sc.Bucket, sc.Prefix), nil
	default:
		return nil, errors.New("C020").
			WithSuggestion("Pass --bucket or --dir, or set snapshot.bucket in " + config.ConfigFileName)
	}
}

func describeStore(sc config.SnapshotConfig, key string) string {
	if sc.Dir != "" {
		return fmt.Sprintf("%s/%s", sc.Dir, key)
	}
	return fmt.Sprintf("s3://%s/%s%s", sc.Bucket, sc.Prefix, key)
}
