package presenter

import (
	"fmt"
	"html/template"
	"io"
	"sync"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"golang.org/x/text/currency"
)

const (
	DefaultModalTitle  = "Wishlist"
	DefaultActionBase  = "/cart/items"
	DefaultClearAction = "/cart/clear"
	EmptyModalMessage  = "Your wishlist is empty"
)

type ModalRow struct {
	ID        string
	Name      string
	Category  string
	ImageRef  string
	UnitPrice string
	Quantity  int
	LineTotal string
}

type ModalView struct {
	Title           string
	ActionBase      string
	ClearAction     string
	Empty           bool
	EmptyMessage    string
	Rows            []ModalRow
	Total           string
	CheckoutSummary string
	Revision        int
}

// Modal is the cart dialog. While open it is refreshed in place: rows are
// updated, dropped or appended, never rebuilt from scratch.
type Modal struct {
	mu         sync.Mutex
	title      string
	actionBase string
	unit       currency.Unit

	rows     []ModalRow
	total    string
	summary  string
	empty    bool
	revision int
}

func NewModal(title string, unit currency.Unit, cart domain.Cart) *Modal {
	if title == "" {
		title = DefaultModalTitle
	}
	m := &Modal{
		title:      title,
		actionBase: DefaultActionBase,
		unit:       unit,
	}
	m.Refresh(cart)
	return m
}

func (m *Modal) Refresh(cart domain.Cart) {
	m.mu.Lock()
	defer m.mu.Unlock()

	byID := make(map[string]domain.LineItem, cart.Len())
	for _, item := range cart.Items {
		byID[item.ID] = item
	}

	kept := m.rows[:0]
	seen := make(map[string]bool, len(m.rows))
	for _, row := range m.rows {
		item, ok := byID[row.ID]
		if !ok {
			continue
		}
		m.fillRow(&row, item)
		kept = append(kept, row)
		seen[row.ID] = true
	}
	for _, item := range cart.Items {
		if seen[item.ID] {
			continue
		}
		var row ModalRow
		m.fillRow(&row, item)
		kept = append(kept, row)
	}

	m.rows = kept
	m.empty = len(kept) == 0
	m.total = domain.NewMoney(cart.Total(), m.unit).String()
	m.summary = CheckoutSummary(cart, m.unit)
	m.revision++
}

func (m *Modal) fillRow(row *ModalRow, item domain.LineItem) {
	row.ID = item.ID
	row.Name = item.Name
	row.Category = item.Category
	row.ImageRef = item.ImageRef
	row.UnitPrice = domain.NewMoney(item.UnitPrice, m.unit).String()
	row.Quantity = item.Quantity
	row.LineTotal = domain.NewMoney(item.Subtotal(), m.unit).String()
}

func (m *Modal) View() ModalView {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := make([]ModalRow, len(m.rows))
	copy(rows, m.rows)

	return ModalView{
		Title:           m.title,
		ActionBase:      m.actionBase,
		ClearAction:     DefaultClearAction,
		Empty:           m.empty,
		EmptyMessage:    EmptyModalMessage,
		Rows:            rows,
		Total:           m.total,
		CheckoutSummary: m.summary,
		Revision:        m.revision,
	}
}

func (m *Modal) Render(w io.Writer) error {
	if err := modalTemplate.Execute(w, m.View()); err != nil {
		return fmt.Errorf("modalTemplate.Execute: %w", err)
	}
	return nil
}

// CheckoutSummary is informational; there is no checkout behind it.
func CheckoutSummary(cart domain.Cart, unit currency.Unit) string {
	return fmt.Sprintf("Proceeding to checkout with %d items totaling %s",
		cart.ItemCount(), domain.NewMoney(cart.Total(), unit))
}

var modalTemplate = template.Must(template.New("modal").Parse(`<div class="modal-body" data-revision="{{.Revision}}">
<h3>{{.Title}}</h3>
{{- if .Empty}}
<div class="empty-cart"><p>{{.EmptyMessage}}</p></div>
{{- else}}
<div class="cart-content">
<div class="cart-items">
{{- range .Rows}}
<div class="cart-item" data-product-id="{{.ID}}">
<div class="item-image"><img src="{{.ImageRef}}" alt="{{.Name}}"></div>
<div class="item-details"><h4>{{.Name}}</h4><p class="item-category">{{.Category}}</p><p class="item-price">{{.UnitPrice}}</p></div>
<div class="quantity-controls">
<form method="post" action="{{$.ActionBase}}/{{.ID}}/decrease"><button class="qty-btn minus" data-action="decrease">-</button></form>
<span class="quantity">{{.Quantity}}</span>
<form method="post" action="{{$.ActionBase}}/{{.ID}}/increase"><button class="qty-btn plus" data-action="increase">+</button></form>
</div>
<div class="item-total">{{.LineTotal}}</div>
<form method="post" action="{{$.ActionBase}}/{{.ID}}/remove"><button class="remove-item" data-action="remove">×</button></form>
</div>
{{- end}}
</div>
<div class="cart-summary">
<div class="cart-total"><strong>Total: {{.Total}}</strong></div>
<p class="checkout-summary">{{.CheckoutSummary}}</p>
<form method="post" action="{{.ClearAction}}"><button class="btn-secondary clear-cart">Clear Cart</button></form>
</div>
</div>
{{- end}}
</div>
`))
