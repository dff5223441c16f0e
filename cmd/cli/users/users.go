package users

import (
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
// CLI Command Init
// ==========================
func InitUsers(rootCmd *cobra.Command) {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users",
	}
	usersCmd.AddCommand(listUsersCmd(), createUserCmd(), exportUsersCmd())
	rootCmd.AddCommand(usersCmd)
}

// ==========================
// List Users
// ==========================
func listUsersCmd() *cobra.Command {
	var (
		search      string
		page, limit int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, cfg, err := root.Client(cmd)
			if err != nil {
				return err
			}

			q := url.Values{}
			if search != "" {
				q.Set("search", search)
			}
			q.Set("page", strconv.Itoa(page))
			q.Set("limit", strconv.Itoa(limit))

			var res client.Page[models.User]
			if err := c.Do(cmd.Context(), "GET", "/users?"+q.Encode(), nil, &res); err != nil {
				return err
			}
			if cfg.Output == "json" {
				return output.PrintJSON(cmd.OutOrStdout(), res)
			}
			rows := make([][]any, 0, len(res.Data))
			for _, u := range res.Data {
				rows = append(rows, []any{u.ID, str(u.Name), u.Email, u.Role, str(u.Department)})
			}
			output.RenderTable(cmd.OutOrStdout(), []string{"ID", "Name", "Email", "Role", "Department"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "match name, email or department")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&limit, "limit", 100, "users per page (max 500)")
	return cmd
}

// ==========================
// Create User
// ==========================
func createUserCmd() *cobra.Command {
	var email, name, role, department string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, cfg, err := root.Client(cmd)
			if err != nil {
				return err
			}
			body := map[string]any{"email": email}
			if name != "" {
				body["name"] = name
			}
			if role != "" {
				body["role"] = role
			}
			if department != "" {
				body["department"] = department
			}

			var u models.User
			if err := c.Do(cmd.Context(), "POST", "/users", body, &u); err != nil {
				return err
			}
			if cfg.Output == "json" {
				return output.PrintJSON(cmd.OutOrStdout(), u)
			}
			output.RenderTable(cmd.OutOrStdout(), []string{"ID", "Name", "Email", "Role", "Created"}, [][]any{
				{u.ID, str(u.Name), u.Email, u.Role, u.CreatedAt.Local().Format(time.DateTime)},
			})
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address (unique)")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&role, "role", "", "user, technician, manager or admin (default user)")
	cmd.Flags().StringVar(&department, "department", "", "department")
	cmd.MarkFlagRequired("email")
	return cmd
}

// ==========================
// Export Users
// ==========================
func exportUsersCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download all users as CSV",
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
			return c.Download(cmd.Context(), "/users/export", w)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "write CSV to this file instead of stdout")
	return cmd
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
