package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

const maxWidth = 72
const minWidth = 40

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	flagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// getTerminalWidth returns the terminal width capped at maxWidth.
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < minWidth {
		return maxWidth
	}
	if width > maxWidth {
		return maxWidth
	}
	return width
}

// SetStyledHelp installs a compact styled help renderer on the command and
// everything added under it.
func SetStyledHelp(cmd *cobra.Command) {
	cmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		width := getTerminalWidth()

		fmt.Println(titleStyle.Render(c.Name()) + " - " + c.Short)
		if c.Long != "" {
			fmt.Println()
			fmt.Println(lipgloss.NewStyle().Width(width).Render(c.Long))
		}

		fmt.Println()
		fmt.Println(sectionStyle.Render("Usage"))
		fmt.Printf("  %s\n", c.UseLine())

		if c.HasAvailableSubCommands() {
			fmt.Println()
			fmt.Println(sectionStyle.Render("Commands"))
			for _, sub := range c.Commands() {
				if sub.Hidden {
					continue
				}
				fmt.Printf("  %-14s %s\n", sub.Name(), sub.Short)
			}
		}

		printFlags := func(title string, flags *pflag.FlagSet) {
			if !flags.HasAvailableFlags() {
				return
			}
			fmt.Println()
			fmt.Println(sectionStyle.Render(title))
			flags.VisitAll(func(f *pflag.Flag) {
				if f.Hidden {
					return
				}
				name := "--" + f.Name
				if f.Shorthand != "" {
					name = "-" + f.Shorthand + ", " + name
				}
				fmt.Printf("  %s  %s\n", flagStyle.Render(fmt.Sprintf("%-22s", name)), f.Usage)
			})
		}

		printFlags("Flags", c.LocalFlags())
		if c.HasParent() {
			printFlags("Global flags", c.InheritedFlags())
		}

		if strings.TrimSpace(c.Example) != "" {
			fmt.Println()
			fmt.Println(sectionStyle.Render("Examples"))
			fmt.Println(c.Example)
		}
	})
}
