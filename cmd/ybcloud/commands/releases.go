package commands

import (
	"context"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/ybcloud-client/internal/constants"
	"github.com/fivetwenty-io/ybcloud-client/pkg/ybapi"
)

// NewReleasesCommand creates the releases command group.
func NewReleasesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "releases",
		Aliases: []string{"release"},
		Short:   "Read software releases",
		Long:    "Read software release tracks and the releases they contain",
	}

	cmd.AddCommand(newReleasesGetCommand())
	cmd.AddCommand(newReleasesListCommand())
	cmd.AddCommand(newReleasesTracksCommand())
	cmd.AddCommand(newReleasesTrackCommand())

	return cmd
}

func newReleasesGetCommand() *cobra.Command {
	var track string

	cmd := &cobra.Command{
		Use:   "get RELEASE_ID",
		Short: "Get release details",
		Long:  "Display a single software release of a track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := accountID()
			if err != nil {
				return err
			}

			if track == "" {
				return constants.ErrTrackRequired
			}

			return runWithClient(cmd, func(ctx context.Context, client ybapi.Client) error {
				release, err := client.SoftwareReleases().GetRelease(ctx, &ybapi.GetReleaseParams{
					AccountID: account,
					TrackID:   track,
					ReleaseID: args[0],
				})
				if err != nil {
					return err
				}

				return renderOutput(cmd.OutOrStdout(), release, func(w io.Writer) error {
					return renderReleasesTable(w, []ybapi.SoftwareRelease{release.Data})
				})
			})
		},
	}

	cmd.Flags().StringVar(&track, "track", "", "track ID")

	return cmd
}

func newReleasesListCommand() *cobra.Command {
	var (
		track    string
		limit    int
		allPages bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List releases of a track",
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := accountID()
			if err != nil {
				return err
			}

			if track == "" {
				return constants.ErrTrackRequired
			}

			params := &ybapi.ListReleasesParams{AccountID: account, TrackID: track, Limit: limit}

			return runWithClient(cmd, func(ctx context.Context, client ybapi.Client) error {
				var releases []ybapi.SoftwareRelease

				if allPages {
					releases, err = client.SoftwareReleases().ListAllReleases(ctx, params)
				} else {
					var list *ybapi.SoftwareReleaseListResponse

					list, err = client.SoftwareReleases().ListReleases(ctx, params)
					if list != nil {
						releases = list.Data
					}
				}

				if err != nil {
					return err
				}

				return renderOutput(cmd.OutOrStdout(), releases, func(w io.Writer) error {
					return renderReleasesTable(w, releases)
				})
			})
		},
	}

	cmd.Flags().StringVar(&track, "track", "", "track ID")
	cmd.Flags().IntVar(&limit, "limit", 0, "page size")
	cmd.Flags().BoolVar(&allPages, "all-pages", false, "fetch all pages")

	return cmd
}

func renderReleasesTable(w io.Writer, releases []ybapi.SoftwareRelease) error {
	if len(releases) == 0 {
		_, _ = io.WriteString(w, "No releases found\n")

		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Track", "Version", "Default", "Released")

	for _, release := range releases {
		id, trackID := constants.NotAvailable, constants.NotAvailable
		if release.Info != nil {
			id, trackID = release.Info.ID, release.Info.TrackID
		}

		version, isDefault, released := constants.NotAvailable, No, constants.NotAvailable
		if release.Spec != nil {
			version = release.Spec.Version
			isDefault = formatBool(release.Spec.IsDefault)
			released = formatTime(release.Spec.ReleaseDate)
		}

		_ = table.Append(id, trackID, version, isDefault, released)
	}

	return renderTable(table)
}

func newReleasesTracksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tracks",
		Short: "List release tracks",
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := accountID()
			if err != nil {
				return err
			}

			return runWithClient(cmd, func(ctx context.Context, client ybapi.Client) error {
				tracks, err := client.SoftwareReleases().ListTracks(ctx, &ybapi.ListTracksParams{AccountID: account})
				if err != nil {
					return err
				}

				return renderOutput(cmd.OutOrStdout(), tracks.Data, func(w io.Writer) error {
					return renderTracksTable(w, tracks.Data)
				})
			})
		},
	}
}

func newReleasesTrackCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "track TRACK_ID",
		Short: "Get release track details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := accountID()
			if err != nil {
				return err
			}

			return runWithClient(cmd, func(ctx context.Context, client ybapi.Client) error {
				track, err := client.SoftwareReleases().GetTrack(ctx, &ybapi.GetTrackParams{
					AccountID: account,
					TrackID:   args[0],
				})
				if err != nil {
					return err
				}

				return renderOutput(cmd.OutOrStdout(), track, func(w io.Writer) error {
					return renderTracksTable(w, []ybapi.SoftwareTrack{track.Data})
				})
			})
		},
	}
}

func renderTracksTable(w io.Writer, tracks []ybapi.SoftwareTrack) error {
	if len(tracks) == 0 {
		_, _ = io.WriteString(w, "No tracks found\n")

		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("#", "ID", "Name", "Description")

	for i, track := range tracks {
		id := constants.NotAvailable
		if track.Info != nil {
			id = track.Info.ID
		}

		name, description := constants.NotAvailable, ""
		if track.Spec != nil {
			name, description = track.Spec.Name, track.Spec.Description
		}

		_ = table.Append(strconv.Itoa(i+1), id, name, orNotAvailable(description))
	}

	return renderTable(table)
}
