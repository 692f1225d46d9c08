package main

import (
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/vecdesk"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the store connection",
	}
	cmd.AddCommand(newConfigShowCmd(a), newConfigSetCmd(a))
	return cmd
}

type connectionView struct {
	URL           string `json:"url"`
	Endpoint      string `json:"endpoint"`
	HasCredential bool   `json:"has_credential"`
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the saved connection (the credential is never printed)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if _, err := a.client.Initialize(ctx); err != nil {
				return err
			}
			st, err := a.client.Settings(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd, connectionView{
				URL:           st.URL,
				Endpoint:      a.client.CurrentEndpoint(),
				HasCredential: st.Credential != "",
			})
		},
	}
}

func newConfigSetCmd(a *app) *cobra.Command {
	var (
		url        string
		credential string
		reset      bool
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Save the store url and credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			st, err := a.client.Settings(ctx)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("url") {
				st.URL = url
			}
			if cmd.Flags().Changed("credential") {
				st.Credential = credential
			}
			if reset {
				st = vecdesk.Settings{}
			}
			if err := a.client.SaveSettings(ctx, st); err != nil {
				return err
			}
			return printJSON(cmd, connectionView{
				URL:           st.URL,
				Endpoint:      a.client.CurrentEndpoint(),
				HasCredential: st.Credential != "",
			})
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "store url; http:// is assumed without a scheme")
	cmd.Flags().StringVar(&credential, "credential", "", "bearer token sent with every request")
	cmd.Flags().BoolVar(&reset, "clear", false, "forget the saved url and credential")
	return cmd
}
