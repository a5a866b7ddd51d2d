package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"modsync/pkg/config"
	"modsync/pkg/filesystem"
	"modsync/pkg/logging"
	"modsync/pkg/modrinth"
	syncengine "modsync/pkg/sync"
)

func newSyncCmd() *cobra.Command {
	var (
		collectionID string
		gameVersion  string
		loader       string
		modsDir      string
		packsDir     string
		apiURL       string
		update       bool
		includePacks bool
		workers      int
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile local directories against a collection",
		Long: `Sync fetches the collection's artifact list, selects the best build per
artifact for the requested game version and loader, and downloads or
replaces local files as needed. Omitting --game-version targets the
newest released game version; a build that does not support it is
reported as having no compatible version.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.sync")

			settings, err := config.Load()
			if err != nil {
				return err
			}

			// Flags override config where given.
			if modsDir == "" {
				modsDir = settings.Sync.ModsDir
			}
			if packsDir == "" {
				packsDir = settings.Sync.ResourcePacksDir
			}
			if apiURL == "" {
				apiURL = settings.API.BaseURL
			}
			if workers <= 0 {
				workers = settings.Sync.Workers
			}

			logger.Info().
				Str("collection", collectionID).
				Str("gameVersion", gameVersion).
				Str("loader", loader).
				Bool("update", update).
				Bool("resourcepacks", includePacks).
				Msg("Starting sync")

			client := modrinth.New(
				modrinth.WithBaseURL(apiURL),
				modrinth.WithTimeout(time.Duration(settings.API.TimeoutSeconds)*time.Second),
			)

			report, results, err := syncengine.SyncCollection(cmd.Context(), client, filesystem.NewOS(), syncengine.RunOptions{
				Options: syncengine.Options{
					GameVersion:      gameVersion,
					Loader:           loader,
					Update:           update,
					ModsDir:          modsDir,
					ResourcePacksDir: packsDir,
					Workers:          workers,
				},
				CollectionID:         collectionID,
				IncludeResourcePacks: includePacks,
				LogDir:               settings.Log.Dir,
			})
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), syncengine.RenderReport(report, results, includePacks))

			logger.Info().
				Int("checked", report.Total.Checked).
				Int("downloaded", report.Total.Downloaded).
				Int("updated", report.Total.Updated).
				Int("noVersion", report.Total.NoVersion).
				Int("failed", report.Total.Failed).
				Msg("Sync finished")
			return nil
		},
	}

	cmd.Flags().StringVarP(&collectionID, "collection", "c", "", "Collection ID from the collection URL (required)")
	cmd.Flags().StringVarP(&gameVersion, "game-version", "g", "", "Target game version, e.g. 1.21.5 (default: latest release)")
	cmd.Flags().StringVarP(&loader, "loader", "l", "", "Loader to match, e.g. fabric, forge, quilt (required)")
	cmd.Flags().StringVarP(&modsDir, "directory", "d", "", "Directory to sync mods into")
	cmd.Flags().StringVar(&packsDir, "resourcepack-directory", "", "Directory to sync resource packs into")
	cmd.Flags().StringVar(&apiURL, "api-url", "", "Alternate API base address")
	cmd.Flags().BoolVarP(&update, "update", "u", false, "Replace installed files when a newer build is available")
	cmd.Flags().BoolVarP(&includePacks, "resourcepacks", "r", false, "Also sync resource packs from the collection")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of parallel downloads")

	_ = cmd.MarkFlagRequired("collection")
	_ = cmd.MarkFlagRequired("loader")

	return cmd
}
