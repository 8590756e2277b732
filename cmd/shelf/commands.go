package main

import (
	"fmt"

	"github.com/koios/moonlight-shelf/internal/deeplink"
	"github.com/koios/moonlight-shelf/pkg/models"
	"github.com/spf13/cobra"
)

func newRenderCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Print the top shelf content as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			provider, closeFn, err := newProvider(opts)
			if err != nil {
				return err
			}
			defer closeFn()

			var content *models.Content
			provider.LoadTopShelfContent(cmd.Context(), func(c *models.Content) {
				content = c
			})
			if content == nil {
				errOut(cmd, "app list is malformed; the shelf would be empty")
			}
			return printJSON(cmd.OutOrStdout(), content)
		},
	}
}

func newAppsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "apps",
		Short: "Print the decoded app list and the entries that were skipped",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			provider, closeFn, err := newProvider(opts)
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := provider.DecodeAppList(cmd.Context())
			if err != nil {
				return err
			}
			if res == nil {
				errOut(cmd, "no app list stored")
				return nil
			}
			for _, rej := range res.Rejections {
				errOut(cmd, "skipped %s", rej)
			}
			return printJSON(cmd.OutOrStdout(), res.Entries)
		},
	}
}

func newLinkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Build or parse moonlight:// deep links",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "build <app-id> <host-uuid>",
		Short: "Print the deep link for an app",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			link, err := deeplink.Build(args[0], args[1])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), link)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "parse <url>",
		Short: "Print the app and host a deep link points at",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := deeplink.Parse(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]string{
				"app":  target.AppID,
				"UUID": target.HostUUID,
			})
		},
	})

	return cmd
}
