package assets

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/crucial707/itadmin/cmd/cli/client"
	"github.com/crucial707/itadmin/cmd/cli/output"
	"github.com/crucial707/itadmin/cmd/cli/root"
	"github.com/crucial707/itadmin/internal/models"
	"github.com/spf13/cobra"
)

// ==========================
// Init Assets
// ==========================
func InitAssets(rootCmd *cobra.Command) {
	assetsCmd := &cobra.Command{
		Use:   "assets",
		Short: "Manage assets and their transaction history",
	}

	assetsCmd.AddCommand(
		listAssetsCmd(),
		getAssetCmd(),
		createAssetCmd(),
		updateAssetCmd(),
		deleteAssetCmd(),
		historyCmd(),
		exportAssetsCmd(),
	)

	rootCmd.AddCommand(assetsCmd)
}

// ==========================
// LIST
// ==========================
func listAssetsCmd() *cobra.Command {
	var (
		status, typ, search string
		page, limit         int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, cfg, err := root.Client(cmd)
			if err != nil {
				return err
			}

			q := filterQuery(status, typ, search)
			q.Set("page", strconv.Itoa(page))
			q.Set("limit", strconv.Itoa(limit))

			var res client.Page[models.Asset]
			if err := c.Do(cmd.Context(), "GET", "/assets?"+q.Encode(), nil, &res); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if cfg.Output == "json" {
				return output.PrintJSON(out, res)
			}

			rows := make([][]any, 0, len(res.Data))
			for _, a := range res.Data {
				rows = append(rows, []any{a.ID, a.Name, a.Type, a.Status, str(a.Location), assignee(a.AssignedToID)})
			}
			output.RenderTable(out, []string{"ID", "Name", "Type", "Status", "Location", "Assigned To"}, rows)
			p := res.Pagination
			fmt.Fprintf(out, "Page %d of %d (%d assets)\n", p.Page, p.TotalPages, p.TotalCount)
			return nil
		},
	}
	addFilterFlags(cmd, &status, &typ, &search)
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&limit, "limit", 10, "assets per page (max 100)")
	return cmd
}

// ==========================
// GET
// ==========================
func getAssetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Show one asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, cfg, err := root.Client(cmd)
			if err != nil {
				return err
			}
			var a models.Asset
			if err := c.Do(cmd.Context(), "GET", "/assets/"+url.PathEscape(args[0]), nil, &a); err != nil {
				return err
			}
			return printAsset(cmd.OutOrStdout(), cfg.Output, a)
		},
	}
}

// ==========================
// CREATE
// ==========================
func createAssetCmd() *cobra.Command {
	fields := &assetFlags{}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an asset",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, cfg, err := root.Client(cmd)
			if err != nil {
				return err
			}
			var a models.Asset
			if err := c.Do(cmd.Context(), "POST", "/assets", fields.body(cmd), &a); err != nil {
				return err
			}
			return printAsset(cmd.OutOrStdout(), cfg.Output, a)
		},
	}
	fields.register(cmd)
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("type")
	return cmd
}

// ==========================
// UPDATE
// ==========================
func updateAssetCmd() *cobra.Command {
	fields := &assetFlags{}
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update an asset; only the flags given are sent",
		Long: `Update an asset. Only flags given on the command line are sent, so other fields
keep their values. An empty value clears an optional field, e.g. --assigned-to ""
returns the asset and --location "" clears its location.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := fields.body(cmd)
			if len(body) == 0 {
				return fmt.Errorf("nothing to update; pass at least one field flag")
			}
			c, cfg, err := root.Client(cmd)
			if err != nil {
				return err
			}
			var a models.Asset
			if err := c.Do(cmd.Context(), "PUT", "/assets/"+url.PathEscape(args[0]), body, &a); err != nil {
				return err
			}
			return printAsset(cmd.OutOrStdout(), cfg.Output, a)
		},
	}
	fields.register(cmd)
	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteAssetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := root.Client(cmd)
			if err != nil {
				return err
			}
			if err := c.Do(cmd.Context(), "DELETE", "/assets/"+url.PathEscape(args[0]), nil, nil); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Asset deleted")
			return nil
		},
	}
}

// ==========================
// HISTORY
// ==========================
func historyCmd() *cobra.Command {
	var page, limit int
	cmd := &cobra.Command{
		Use:   "history [id]",
		Short: "Show the transaction history of an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := strconv.Atoi(args[0]); err != nil {
				return fmt.Errorf("invalid asset id %q", args[0])
			}
			c, cfg, err := root.Client(cmd)
			if err != nil {
				return err
			}

			q := url.Values{}
			q.Set("assetId", args[0])
			q.Set("page", strconv.Itoa(page))
			q.Set("limit", strconv.Itoa(limit))

			var res client.Page[models.AssetTransaction]
			if err := c.Do(cmd.Context(), "GET", "/assets/transactions?"+q.Encode(), nil, &res); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if cfg.Output == "json" {
				return output.PrintJSON(out, res)
			}

			rows := make([][]any, 0, len(res.Data))
			for _, t := range res.Data {
				user := "-"
				if t.UserID != nil {
					user = strconv.Itoa(*t.UserID)
				}
				rows = append(rows, []any{t.ID, t.CreatedAt.Local().Format(time.DateTime), t.Action, str(t.Notes), user})
			}
			output.RenderTable(out, []string{"ID", "When", "Action", "Notes", "User"}, rows)
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&limit, "limit", 20, "transactions per page (max 100)")
	return cmd
}

// ==========================
// EXPORT
// ==========================
func exportAssetsCmd() *cobra.Command {
	var status, typ, search, file string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download matching assets as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := root.Client(cmd)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if file != "" && file != "-" {
				f, err := os.Create(file)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			path := "/assets/export"
			if q := filterQuery(status, typ, search); len(q) > 0 {
				path += "?" + q.Encode()
			}
			return c.Download(cmd.Context(), path, w)
		},
	}
	addFilterFlags(cmd, &status, &typ, &search)
	cmd.Flags().StringVarP(&file, "file", "f", "", "write CSV to this file instead of stdout")
	return cmd
}

// ==========================
// Helpers
// ==========================

// assetFlags maps command line flags onto the JSON body of create and update.
type assetFlags struct {
	name, typ, model, serial, po, purchased, warranty, location, status, assignedTo string
}

func (f *assetFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.name, "name", "", "asset name")
	fl.StringVar(&f.typ, "type", "", "computer, monitor, printer, server, network_device or software_license")
	fl.StringVar(&f.model, "model", "", "model")
	fl.StringVar(&f.serial, "serial", "", "serial number")
	fl.StringVar(&f.po, "purchase-order", "", "purchase order")
	fl.StringVar(&f.purchased, "purchase-date", "", "purchase date (YYYY-MM-DD)")
	fl.StringVar(&f.warranty, "warranty-expiry", "", "warranty expiry (YYYY-MM-DD)")
	fl.StringVar(&f.location, "location", "", "location")
	fl.StringVar(&f.status, "status", "", "active, in_stock, maintenance, retired or lost")
	fl.StringVar(&f.assignedTo, "assigned-to", "", "id of the assigned user")
}

// body includes only the flags the user set. Empty optional values are sent
// as null so the server clears them.
func (f *assetFlags) body(cmd *cobra.Command) map[string]any {
	body := map[string]any{}
	set := func(flag, key, value string, nullable bool) {
		if !cmd.Flags().Changed(flag) {
			return
		}
		if value == "" && nullable {
			body[key] = nil
			return
		}
		body[key] = value
	}
	set("name", "name", f.name, false)
	set("type", "type", f.typ, false)
	set("model", "model", f.model, true)
	set("serial", "serialNumber", f.serial, true)
	set("purchase-order", "purchaseOrder", f.po, true)
	set("purchase-date", "purchaseDate", f.purchased, true)
	set("warranty-expiry", "warrantyExpiry", f.warranty, true)
	set("location", "location", f.location, true)
	set("status", "status", f.status, false)
	set("assigned-to", "assignedToId", f.assignedTo, true)
	return body
}

func addFilterFlags(cmd *cobra.Command, status, typ, search *string) {
	cmd.Flags().StringVar(status, "status", "", "filter by status (in_stock selects unassigned assets)")
	cmd.Flags().StringVar(typ, "type", "", "filter by type")
	cmd.Flags().StringVar(search, "search", "", "match name, model, serial, location or purchase order")
}

func filterQuery(status, typ, search string) url.Values {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if typ != "" {
		q.Set("type", typ)
	}
	if search != "" {
		q.Set("search", search)
	}
	return q
}

func printAsset(w io.Writer, format string, a models.Asset) error {
	if format == "json" {
		return output.PrintJSON(w, a)
	}
	output.RenderTable(w, []string{"Field", "Value"}, [][]any{
		{"ID", a.ID},
		{"Name", a.Name},
		{"Type", a.Type},
		{"Model", str(a.Model)},
		{"Serial Number", str(a.SerialNumber)},
		{"Purchase Order", str(a.PurchaseOrder)},
		{"Purchase Date", date(a.PurchaseDate)},
		{"Warranty Expiry", date(a.WarrantyExpiry)},
		{"Location", str(a.Location)},
		{"Status", a.Status},
		{"Assigned To", assignee(a.AssignedToID)},
	})
	return nil
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func date(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.DateOnly)
}

func assignee(id *int) string {
	if id == nil {
		return "Unassigned"
	}
	return "User " + strconv.Itoa(*id)
}
