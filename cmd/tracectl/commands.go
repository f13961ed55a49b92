package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mfgtrace/tracectl/internal/browser"
	"github.com/mfgtrace/tracectl/internal/feedback"
	"github.com/mfgtrace/tracectl/internal/session"
	"github.com/mfgtrace/tracectl/internal/tui"
	"github.com/mfgtrace/tracectl/pkg/client"
	"github.com/mfgtrace/tracectl/pkg/domain"
)

func newLoginCmd(app *cli) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the access token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if username == "" || password == "" {
				if !tui.IsInteractive() {
					return errors.New("username and password are required (use --username and --password)")
				}
				u, p, err := tui.PromptCredentials()
				if err != nil {
					return err
				}
				username, password = u, p
			}

			printer := feedback.NewPrinter(cmd.ErrOrStderr())
			res, err := app.client(printer).Login(cmd.Context(), strings.TrimSpace(username), password)
			if err != nil {
				return err
			}
			if err := app.store.Set(res.AccessToken, res.User); err != nil {
				return fmt.Errorf("save credentials: %w", err)
			}
			log.Debug().Str("username", res.User.Username).Msg("credentials stored")
			printer.Notify("成功", "欢迎, "+res.User.Username, domain.SeveritySuccess)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	return cmd
}

func newRegisterCmd(app *cli) *cobra.Command {
	var reg domain.Registration
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new operator account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if reg.Username == "" || reg.Email == "" || reg.Password == "" {
				if !tui.IsInteractive() {
					return errors.New("username, email and password are required")
				}
				prompted, err := tui.PromptRegistration()
				if err != nil {
					return err
				}
				reg = prompted
			}

			printer := feedback.NewPrinter(cmd.ErrOrStderr())
			if err := app.client(printer).Register(cmd.Context(), reg); err != nil {
				return err
			}
			printer.Notify("成功", "注册成功，请登录", domain.SeveritySuccess)
			return nil
		},
	}
	cmd.Flags().StringVarP(&reg.Username, "username", "u", "", "username")
	cmd.Flags().StringVar(&reg.Email, "email", "", "email address")
	cmd.Flags().StringVarP(&reg.Password, "password", "p", "", "password")
	cmd.Flags().StringVar(&reg.Role, "role", "operator", "role: operator, inspector or admin")
	cmd.Flags().StringVar(&reg.Department, "department", "", "department")
	return cmd
}

func newLogoutCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear stored credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if app.store.Token() == "" {
				fmt.Fprintln(out, "当前未登录。") //nolint:errcheck
				return nil
			}
			// The server side is told best-effort; local credentials go regardless.
			if err := app.client(nil).ServerLogout(cmd.Context()); err != nil {
				log.Debug().Err(err).Msg("server logout failed")
			}
			mgr, _ := app.session(session.LoginPath)
			mgr.Logout()
			fmt.Fprintln(out, "已登出。") //nolint:errcheck
			return nil
		},
	}
}

func newWhoamiCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr, outcome := app.session("/whoami")
			if outcome != session.Authenticated {
				printLoginHint(cmd.ErrOrStderr())
				return errNotLoggedIn
			}
			printUser(cmd.OutOrStdout(), mgr.Context().User())
			return nil
		},
	}
}

func newScanCmd(app *cli) *cobra.Command {
	var copyCode bool
	cmd := &cobra.Command{
		Use:   "scan <qr-code>",
		Short: "Resolve QR code data to its product and tracking record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, outcome := app.session("/tracking"); outcome != session.Authenticated {
				printLoginHint(cmd.ErrOrStderr())
				return errNotLoggedIn
			}
			printer := feedback.NewPrinter(cmd.ErrOrStderr())
			qr := args[0]
			if qr == "" {
				printer.Notify("错误", "请输入二维码数据", domain.SeverityError)
				return errors.New("empty QR code")
			}

			res, err := app.client(printer).ScanQRCode(cmd.Context(), qr)
			if err != nil {
				return err
			}
			printScanResult(cmd.OutOrStdout(), res)
			printer.Notify("成功", "扫描成功", domain.SeveritySuccess)

			if copyCode && res.Product != nil {
				if err := clipboard.WriteAll(res.Product.ProductCode); err != nil {
					printer.Notify("错误", "复制失败: "+err.Error(), domain.SeverityError)
				} else {
					printer.Notify("提示", "已复制 "+res.Product.ProductCode, domain.SeverityInfo)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&copyCode, "copy", "c", false, "copy the product code to the clipboard")
	return cmd
}

func newProductsCmd(app *cli) *cobra.Command {
	var (
		keyword string
		opts    client.ListOptions
	)
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List or search products",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, outcome := app.session("/products"); outcome != session.Authenticated {
				printLoginHint(cmd.ErrOrStderr())
				return errNotLoggedIn
			}
			c := app.client(feedback.NewPrinter(cmd.ErrOrStderr()))

			var (
				products []domain.Product
				empty    = "暂无产品数据"
			)
			if keyword != "" {
				found, err := c.SearchProducts(cmd.Context(), keyword)
				if err != nil {
					return err
				}
				products, empty = found, "没有找到匹配的产品"
			} else {
				page, err := c.ListProducts(cmd.Context(), opts)
				if err != nil {
					return err
				}
				products = page.Products
			}

			if len(products) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), empty) //nolint:errcheck
				return nil
			}
			printProducts(cmd.OutOrStdout(), products)
			return nil
		},
	}
	cmd.Flags().StringVarP(&keyword, "search", "s", "", "search keyword")
	cmd.Flags().StringVar(&opts.Status, "status", "", "filter by status: produced, shipped, sold, recalled")
	cmd.Flags().StringVar(&opts.Type, "type", "", "filter by product type")
	cmd.Flags().IntVar(&opts.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&opts.PerPage, "per-page", 20, "rows per page")
	cmd.AddCommand(newProductAddCmd(app))
	return cmd
}

func newProductAddCmd(app *cli) *cobra.Command {
	var (
		in       domain.ProductInput
		warranty int
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new product",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if in.ProductCode == "" || in.ProductName == "" {
				return errors.New("--code and --name are required")
			}
			if _, outcome := app.session("/products"); outcome != session.Authenticated {
				printLoginHint(cmd.ErrOrStderr())
				return errNotLoggedIn
			}
			if cmd.Flags().Changed("warranty") {
				in.WarrantyPeriod = &warranty
			}
			printer := feedback.NewPrinter(cmd.ErrOrStderr())
			p, err := app.client(printer).CreateProduct(cmd.Context(), in)
			if err != nil {
				return err
			}
			printProducts(cmd.OutOrStdout(), []domain.Product{*p})
			printer.Notify("成功", "产品创建成功", domain.SeveritySuccess)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.ProductCode, "code", "", "product code")
	cmd.Flags().StringVar(&in.ProductName, "name", "", "product name")
	cmd.Flags().StringVar(&in.ProductType, "type", "", "product type")
	cmd.Flags().StringVar(&in.Manufacturer, "manufacturer", "", "manufacturer")
	cmd.Flags().StringVar(&in.ProductionDate, "date", "", "production date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.Status, "status", domain.StatusProduced, "initial status")
	cmd.Flags().IntVar(&warranty, "warranty", 0, "warranty period in months")
	return cmd
}

func newTrackingCmd(app *cli) *cobra.Command {
	var opts client.ListOptions
	cmd := &cobra.Command{
		Use:   "tracking",
		Short: "List tracking records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, outcome := app.session("/tracking"); outcome != session.Authenticated {
				printLoginHint(cmd.ErrOrStderr())
				return errNotLoggedIn
			}
			page, err := app.client(feedback.NewPrinter(cmd.ErrOrStderr())).ListTracking(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if len(page.Tracking) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "暂无追溯数据") //nolint:errcheck
				return nil
			}
			printTracking(cmd.OutOrStdout(), page.Tracking)
			fmt.Fprintf(cmd.OutOrStdout(), "共 %d 条\n", page.Total) //nolint:errcheck
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.Status, "status", "", "filter by status")
	cmd.Flags().IntVar(&opts.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&opts.PerPage, "per-page", 20, "rows per page")
	return cmd
}

func newStatsCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the dashboard overview",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, outcome := app.session("/dashboard"); outcome != session.Authenticated {
				printLoginHint(cmd.ErrOrStderr())
				return errNotLoggedIn
			}
			stats, err := app.client(feedback.NewPrinter(cmd.ErrOrStderr())).DashboardStats(cmd.Context())
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), stats)
			return nil
		},
	}
}

func newOpenCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "open [page]",
		Short: "Open a page of the web panel in the browser",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page := ""
			if len(args) == 1 {
				page = args[0]
			}
			url, err := browser.PageURL(app.cfg.WebURL, page)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url) //nolint:errcheck
			return browser.Open(url)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "tracectl "+version) //nolint:errcheck
			return nil
		},
	}
}
