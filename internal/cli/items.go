package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cumulus/pkg/layout"
)

// itemsCommand creates the items command group for authoring item sets.
func (c *CLI) itemsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Author and inspect weighted item sets",
	}

	cmd.AddCommand(c.itemsNewCommand())
	cmd.AddCommand(c.itemsShowCommand())

	return cmd
}

// itemsNewCommand creates the "items new" subcommand: an interactive editor
// that builds an items.json file row by row.
func (c *CLI) itemsNewCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "new [items.json]",
		Short: "Interactively create a weighted item set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model := newItemEditor(name)
			p := tea.NewProgram(model)
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("run editor: %w", err)
			}

			editor, ok := final.(itemEditor)
			if !ok || editor.aborted {
				printInfo("Aborted, nothing written")
				return nil
			}
			if len(editor.set.Items) == 0 {
				printInfo("No items entered, nothing written")
				return nil
			}

			track := newProgress(loggerFromContext(cmd.Context()))
			if err := layout.WriteItemSetFile(editor.set, args[0]); err != nil {
				return fmt.Errorf("write %s: %w", args[0], err)
			}
			track.done(fmt.Sprintf("Wrote %d items", len(editor.set.Items)))

			printSuccess("Item set created")
			printFile(args[0])
			printNewline()
			printNextStep("Compute layout", "cumulus layout "+args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "name for the item set")

	return cmd
}

// itemsShowCommand creates the "items show" subcommand.
func (c *CLI) itemsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [items.json]",
		Short: "Print an item set sorted by weight",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := layout.ReadItemSetFile(args[0])
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}

			if set.Name != "" {
				printKeyValue("name", set.Name)
			}
			printKeyValue("items", strconv.Itoa(len(set.Items)))
			printNewline()

			sorted := make([]layout.Item, len(set.Items))
			copy(sorted, set.Items)
			sort.SliceStable(sorted, func(i, j int) bool {
				return sorted[i].Weight > sorted[j].Weight
			})
			for _, it := range sorted {
				printDetail("%-24s %g", it.DisplayLabel(), it.Weight)
			}
			return nil
		},
	}
}

// =============================================================================
// Interactive Editor
// =============================================================================

// editStage is the field currently being entered.
type editStage int

const (
	stageID editStage = iota
	stageLabel
	stageWeight
)

// itemEditor is the bubbletea model for the interactive item-set editor.
// Each row is entered as id → label → weight; an empty id finishes the set.
type itemEditor struct {
	set     layout.ItemSet
	stage   editStage
	input   string
	pending layout.Item
	errMsg  string
	aborted bool
	done    bool
}

func newItemEditor(name string) itemEditor {
	return itemEditor{set: layout.ItemSet{Name: name}}
}

func (m itemEditor) Init() tea.Cmd {
	return nil
}

func (m itemEditor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.aborted = true
		return m, tea.Quit
	case tea.KeyBackspace:
		if m.input != "" {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyRunes, tea.KeySpace:
		m.input += key.String()
	}
	return m, nil
}

// submit advances the current stage with the buffered input.
func (m itemEditor) submit() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input)
	m.input = ""
	m.errMsg = ""

	switch m.stage {
	case stageID:
		if value == "" {
			m.done = true
			return m, tea.Quit
		}
		for _, existing := range m.set.Items {
			if existing.ID == value {
				m.errMsg = fmt.Sprintf("duplicate id %q", value)
				return m, nil
			}
		}
		m.pending = layout.Item{ID: value}
		m.stage = stageLabel
	case stageLabel:
		m.pending.Label = value // empty keeps the id as label
		m.stage = stageWeight
	case stageWeight:
		w, err := strconv.ParseFloat(value, 64)
		if err != nil {
			m.errMsg = fmt.Sprintf("%q is not a number", value)
			return m, nil
		}
		m.pending.Weight = w
		m.set.Items = append(m.set.Items, m.pending)
		m.pending = layout.Item{}
		m.stage = stageID
	}
	return m, nil
}

func (m itemEditor) View() string {
	if m.done || m.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("New Item Set"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("enter values  ⏎ next field  empty id finishes  esc abort"))
	b.WriteString("\n\n")

	for _, it := range m.set.Items {
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			StyleSuccess.Render(iconSuccess),
			StyleValue.Render(fmt.Sprintf("%-20s", it.DisplayLabel())),
			StyleDim.Render(strconv.FormatFloat(it.Weight, 'g', -1, 64))))
	}
	if len(m.set.Items) > 0 {
		b.WriteString("\n")
	}

	prompt := "id"
	switch m.stage {
	case stageLabel:
		prompt = fmt.Sprintf("label for %s (optional)", m.pending.ID)
	case stageWeight:
		prompt = fmt.Sprintf("weight for %s", m.pending.ID)
	}
	b.WriteString(fmt.Sprintf("  %s %s%s\n", StyleDim.Render(prompt+":"), m.input, StyleTitle.Render("▌")))

	if m.errMsg != "" {
		b.WriteString("  " + StyleWarning.Render(m.errMsg) + "\n")
	}

	return b.String()
}
