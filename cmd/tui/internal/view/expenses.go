package view

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/mayarh926-blip/etesalat-app/internal/ledger"
)

type expenseState int

const (
	expenseStateList expenseState = iota
	expenseStateForm
	expenseStateConfirmDelete
)

// Shortcuts for the recurring shop expenses.
var expensePresets = map[string]string{
	"1": "rent",
	"2": "electricity",
	"3": "internet",
}

type expenseItem struct {
	exp *ledger.Expense
}

func (i expenseItem) Title() string {
	return fmt.Sprintf("%s  %s  %s", FormatDate(i.exp.Date), FormatMoney(i.exp.Amount), i.exp.Name)
}

func (i expenseItem) Description() string { return "" }

func (i expenseItem) FilterValue() string { return i.exp.Name }

type ExpensesModel struct {
	CommonModel
	ledgerService *ledger.Service

	state   expenseState
	list    list.Model
	exps    []*ledger.Expense
	loading bool
	status  string

	form *huh.Form

	// Form field bindings
	formName   string
	formAmount string
}

func NewExpensesModel(svc *ledger.Service) ExpensesModel {
	l := list.New([]list.Item{}, expenseItemDelegate{}, 0, 0)
	l.Title = "Expenses"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return ExpensesModel{
		ledgerService: svc,
		list:          l,
		loading:       true,
	}
}

func (m ExpensesModel) Title() string { return "Expenses" }

func (m ExpensesModel) ShortHelp() string {
	switch m.state {
	case expenseStateList:
		return "Esc: back | a: add | 1/2/3: rent/electricity/internet | d: delete | /: filter"
	case expenseStateForm:
		return "Esc: cancel | Enter/Tab: navigate form"
	case expenseStateConfirmDelete:
		return "y: delete | n: cancel"
	}

	return ""
}

func (m ExpensesModel) Init() tea.Cmd {
	return m.loadExpensesCmd()
}

func (m ExpensesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadExpensesMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.exps = msg.exps
		m.refreshListItems()

		if len(msg.exps) == 0 {
			m.status = "No expenses recorded."
		}

		return m, nil

	case expenseActionMsg:
		m.state = expenseStateList
		m.form = nil

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = msg.done
		m.loading = true

		return m, m.loadExpensesCmd()

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	switch m.state {
	case expenseStateList:
		return m.updateList(msg)
	case expenseStateForm:
		return m.updateForm(msg)
	case expenseStateConfirmDelete:
		return m.updateConfirm(msg)
	}

	return m, nil
}

func (m ExpensesModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.list.FilterState() != list.Filtering {
			key := keyMsg.String()

			if name, ok := expensePresets[key]; ok {
				return m.startForm(name)
			}

			switch key {
			case "esc":
				return m, Back
			case "a":
				return m.startForm("")
			case "d":
				if _, ok := m.list.SelectedItem().(expenseItem); ok {
					m.state = expenseStateConfirmDelete
					return m, nil
				}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m ExpensesModel) startForm(name string) (tea.Model, tea.Cmd) {
	m.formName = name
	m.formAmount = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Expense").
				Placeholder(ledger.DefaultExpenseName).
				Value(&m.formName),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("25000").
				Validate(validateAmount).
				Value(&m.formAmount),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = expenseStateForm

	return m, m.form.Init()
}

func (m ExpensesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = expenseStateList
			m.form = nil

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveExpenseCmd()
}

func (m ExpensesModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		if selected, ok := m.list.SelectedItem().(expenseItem); ok {
			return m, m.deleteExpenseCmd(selected.exp.ID)
		}

		m.state = expenseStateList

		return m, nil
	case "n", "esc":
		m.state = expenseStateList
		return m, nil
	}

	return m, nil
}

func (m ExpensesModel) View() string {
	switch m.state {
	case expenseStateForm:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case expenseStateConfirmDelete:
		selected, _ := m.list.SelectedItem().(expenseItem)
		prompt := "Delete this expense?"
		if selected.exp != nil {
			prompt = fmt.Sprintf("Delete %s of %s?", selected.exp.Name, FormatMoney(selected.exp.Amount))
		}

		body := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")).Render(prompt) +
			"\n\ny: confirm    n: cancel"

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("196")).
				Padding(0, 1).
				Render(body),
		)
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading expenses...")
	}

	statusLine := ""
	if m.status != "" {
		statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
	}

	return lipgloss.NewStyle().Padding(1).Render(statusLine + m.list.View())
}

func (m *ExpensesModel) refreshListItems() {
	items := make([]list.Item, len(m.exps))
	for i, exp := range m.exps {
		items[i] = expenseItem{exp: exp}
	}

	m.list.SetItems(items)
}

// Messages

type loadExpensesMsg struct {
	exps []*ledger.Expense
	err  error
}

func (m ExpensesModel) loadExpensesCmd() tea.Cmd {
	svc := m.ledgerService

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		exps, err := svc.Expenses(ctx)

		return loadExpensesMsg{exps: exps, err: err}
	}
}

type expenseActionMsg struct {
	done string
	err  error
}

func (m ExpensesModel) saveExpenseCmd() tea.Cmd {
	svc := m.ledgerService
	name := m.form.GetString("name")
	amount, _ := parseAmount(m.form.GetString("amount"))

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		exp, err := svc.RecordExpense(ctx, name, amount)
		if err != nil {
			return expenseActionMsg{err: err}
		}

		return expenseActionMsg{done: fmt.Sprintf("Recorded %s of %s.", exp.Name, FormatMoney(exp.Amount))}
	}
}

func (m ExpensesModel) deleteExpenseCmd(id uuid.UUID) tea.Cmd {
	svc := m.ledgerService

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		if err := svc.DeleteExpense(ctx, id); err != nil {
			return expenseActionMsg{err: err}
		}

		return expenseActionMsg{done: "Deleted."}
	}
}

// expenseItemDelegate renders expense rows.
type expenseItemDelegate struct{}

func (d expenseItemDelegate) Height() int                             { return 1 }
func (d expenseItemDelegate) Spacing() int                            { return 0 }
func (d expenseItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d expenseItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(expenseItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)
}
