package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pagecraft/internal/core/domain"
)

var siteOutput string

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Manage site-wide branding",
	Long: `View and change the branding applied to every page: site name,
tagline, logo, colours, fonts and header/footer visibility.

Site settings are not part of the page history; changes take effect
immediately and are saved to config.toml.`,
	RunE: runSiteShow,
}

var siteShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current site settings",
	Args:  cobra.NoArgs,
	RunE:  runSiteShow,
}

var siteSetCmd = &cobra.Command{
	Use:   "set key=value [key=value...]",
	Short: "Change site settings",
	Long: `Change one or more site settings. Nothing is saved if any value is invalid.

Keys:
  name, tagline, logo_url,
  primary_color, secondary_color, background_color, text_color,
  heading_font, body_font, show_header, show_footer

Example:
  pagecraft site set name="Acme Careers" primary_color=#0F766E show_footer=false`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSiteSet,
}

var siteResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default site settings",
	Args:  cobra.NoArgs,
	RunE:  runSiteReset,
}

func init() {
	siteCmd.PersistentFlags().StringVarP(&siteOutput, "output", "o", formatText, "output format: text, json or yaml")
	siteCmd.AddCommand(siteShowCmd)
	siteCmd.AddCommand(siteSetCmd)
	siteCmd.AddCommand(siteResetCmd)
	rootCmd.AddCommand(siteCmd)
}

// siteFields maps CLI keys onto SiteSettings fields.
var siteFields = map[string]func(s *domain.SiteSettings, value string) error{
	"name":             func(s *domain.SiteSettings, v string) error { s.Name = v; return nil },
	"tagline":          func(s *domain.SiteSettings, v string) error { s.Tagline = v; return nil },
	"logo_url":         func(s *domain.SiteSettings, v string) error { s.LogoURL = v; return nil },
	"primary_color":    func(s *domain.SiteSettings, v string) error { s.PrimaryColor = v; return nil },
	"secondary_color":  func(s *domain.SiteSettings, v string) error { s.SecondaryColor = v; return nil },
	"background_color": func(s *domain.SiteSettings, v string) error { s.BackgroundColor = v; return nil },
	"text_color":       func(s *domain.SiteSettings, v string) error { s.TextColor = v; return nil },
	"heading_font":     func(s *domain.SiteSettings, v string) error { s.HeadingFont = v; return nil },
	"body_font":        func(s *domain.SiteSettings, v string) error { s.BodyFont = v; return nil },
	"show_header":      boolField(func(s *domain.SiteSettings, b bool) { s.ShowHeader = b }),
	"show_footer":      boolField(func(s *domain.SiteSettings, b bool) { s.ShowFooter = b }),
}

func boolField(set func(*domain.SiteSettings, bool)) func(*domain.SiteSettings, string) error {
	return func(s *domain.SiteSettings, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%q is not a boolean: %w", v, domain.ErrInvalidInput)
		}
		set(s, b)
		return nil
	}
}

func runSiteShow(cmd *cobra.Command, _ []string) error {
	if err := validFormat(siteOutput); err != nil {
		return err
	}
	site, err := requireSite()
	if err != nil {
		return err
	}

	settings, err := site.Get()
	if err != nil {
		return fmt.Errorf("failed to get site settings: %w", err)
	}
	return printSite(cmd, settings)
}

func runSiteSet(cmd *cobra.Command, args []string) error {
	if err := validFormat(siteOutput); err != nil {
		return err
	}
	site, err := requireSite()
	if err != nil {
		return err
	}

	type assignment struct {
		apply func(*domain.SiteSettings, string) error
		value string
	}
	assignments := make([]assignment, 0, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("expected key=value, got %q", arg)
		}
		apply, known := siteFields[strings.TrimSpace(key)]
		if !known {
			return fmt.Errorf("unknown site setting %q (known: %s)", key, strings.Join(siteKeys(), ", "))
		}
		assignments = append(assignments, assignment{apply: apply, value: value})
	}

	settings, err := site.Get()
	if err != nil {
		return fmt.Errorf("failed to get site settings: %w", err)
	}
	for _, a := range assignments {
		if err := a.apply(settings, a.value); err != nil {
			return err
		}
	}
	if err := site.Save(settings); err != nil {
		return fmt.Errorf("failed to save site settings: %w", err)
	}

	if siteOutput == formatText {
		cmd.Println("Site settings saved.")
		cmd.Println()
	}
	return printSite(cmd, settings)
}

func runSiteReset(cmd *cobra.Command, _ []string) error {
	site, err := requireSite()
	if err != nil {
		return err
	}
	if err := site.Reset(); err != nil {
		return fmt.Errorf("failed to reset site settings: %w", err)
	}
	cmd.Println("Site settings restored to defaults.")
	return nil
}

func printSite(cmd *cobra.Command, s *domain.SiteSettings) error {
	if siteOutput != formatText {
		return writeStructured(cmd.OutOrStdout(), siteOutput, s)
	}

	cmd.Println("Site Settings")
	cmd.Println("=============")
	cmd.Printf("  Name:             %s\n", s.Name)
	cmd.Printf("  Tagline:          %s\n", orNone(s.Tagline))
	cmd.Printf("  Logo URL:         %s\n", orNone(s.LogoURL))
	cmd.Printf("  Primary colour:   %s\n", s.PrimaryColor)
	cmd.Printf("  Secondary colour: %s\n", s.SecondaryColor)
	cmd.Printf("  Background:       %s\n", s.BackgroundColor)
	cmd.Printf("  Text colour:      %s\n", s.TextColor)
	cmd.Printf("  Heading font:     %s\n", s.HeadingFont)
	cmd.Printf("  Body font:        %s\n", s.BodyFont)
	cmd.Printf("  Show header:      %s\n", yesNo(s.ShowHeader))
	cmd.Printf("  Show footer:      %s\n", yesNo(s.ShowFooter))
	return nil
}

func siteKeys() []string {
	keys := make([]string, 0, len(siteFields))
	for k := range siteFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func orNone(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
