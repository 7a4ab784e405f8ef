package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/feenotify/feenotify/pkg/config"
	"github.com/feenotify/feenotify/pkg/executors"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "feenotify",
	Short: "Membership-fee notification mails for the club treasury",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Show help when no subcommand is provided
		return cmd.Help()
	},
}

var prepareCmd = &cobra.Command{
	Use:   "prepare [flags] <workbook>",
	Short: "Generate the fee notification batch from an Excel workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		valueDate, err := dateFlag(cmd, "value-date")
		if err != nil {
			return err
		}
		updateDate, err := dateFlag(cmd, "update-date")
		if err != nil {
			return err
		}

		outdir, _ := cmd.Flags().GetString("outdir")
		templatePath, _ := cmd.Flags().GetString("template")
		columnsPath, _ := cmd.Flags().GetString("columns")
		contactEmail, _ := cmd.Flags().GetString("contact-email")

		exec := executors.New(logger, cfg, executors.MailDialer(logger), nil)
		return exec.Prepare(executors.PrepareOptions{
			Workbook:     args[0],
			OutDir:       outdir,
			Template:     templatePath,
			Columns:      columnsPath,
			ValueDate:    valueDate,
			UpdateDate:   updateDate,
			ContactEmail: contactEmail,
			Debug:        debug,
		})
	},
}

var sendCmd = &cobra.Command{
	Use:   "send [flags] <batch-dir>",
	Short: "Send a previously generated notification batch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		yes, _ := cmd.Flags().GetBool("yes")

		confirm := promptConfirm
		if yes {
			confirm = func(string) (bool, error) { return true, nil }
		}

		exec := executors.New(logger, cfg, executors.MailDialer(logger), confirm)
		return exec.Send(executors.SendOptions{
			Dir:   args[0],
			Force: force,
		})
	},
}

func newLogger() *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "feenotify",
		Level:           level,
	})
}

func promptConfirm(prompt string) (bool, error) {
	fmt.Print(prompt)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y"), nil
}

func dateFlag(cmd *cobra.Command, name string) (time.Time, error) {
	value, _ := cmd.Flags().GetString(name)
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q, expected yyyy-MM-dd", name, value)
	}
	return date, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "./config.json", "Config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Verbose debug output")

	today := time.Now().Truncate(24 * time.Hour)
	prepareCmd.Flags().StringP("outdir", "o", "./out/fee-notifications", "Output directory for the generated batch")
	prepareCmd.Flags().StringP("template", "t", "", "Message template file (default: built-in template)")
	prepareCmd.Flags().String("columns", "", "YAML column-mapping override")
	prepareCmd.Flags().StringP("value-date", "v", today.AddDate(0, 0, 14).Format("2006-01-02"),
		"Collection date, at least two weeks ahead (yyyy-MM-dd)")
	prepareCmd.Flags().StringP("update-date", "u", today.AddDate(0, 0, 7).Format("2006-01-02"),
		"Deadline for members to report data changes (yyyy-MM-dd)")
	prepareCmd.Flags().StringP("contact-email", "e", "schatzmeister@jubo.info",
		"Contact address for fee questions")

	sendCmd.Flags().Bool("force", false, "Resend entries that already carry a sent marker")
	sendCmd.Flags().Bool("yes", false, "Answer the confirmation prompt with yes")

	rootCmd.AddCommand(prepareCmd)
	rootCmd.AddCommand(sendCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
