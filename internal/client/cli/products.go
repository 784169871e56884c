package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/faktura/internal/client/api"
	"github.com/dmitrijs2005/faktura/internal/client/catalog"
	"github.com/dmitrijs2005/faktura/internal/validate"
)

var getMultiline = GetMultiline

// Products shows a page of the product list. An explicit page number clears
// the search filter.
func (a *App) Products(ctx context.Context, arg string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	page := 1
	if arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			return a.usage("products [page]")
		}
		page = n
	}
	return a.showPage(ctx, page, "")
}

// Search submits text to the debounced searcher; the matching page is printed
// once typing has paused. An empty text clears the filter.
func (a *App) Search(ctx context.Context, text string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if text == "" || a.searcher == nil {
		return a.showPage(ctx, 1, text)
	}
	a.searcher.Submit(text)
	return nil
}

func (a *App) Next(ctx context.Context) error {
	return a.step(ctx, +1)
}

func (a *App) Prev(ctx context.Context) error {
	return a.step(ctx, -1)
}

func (a *App) step(ctx context.Context, delta int) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	a.mu.Lock()
	cur := a.current
	a.mu.Unlock()

	if cur.page == 0 {
		return a.showPage(ctx, 1, "")
	}
	target := cur.page + delta
	if target < 1 || target > cur.pages {
		a.printf("%s %d %s %d\n", a.t("page"), cur.page, a.t("of"), max(cur.pages, 1))
		return nil
	}
	return a.showPage(ctx, target, cur.search)
}

func (a *App) showPage(ctx context.Context, page int, search string) error {
	p, err := a.catalog.List(ctx, page, search)
	if err != nil {
		return a.report(err)
	}
	a.setListing(p, search)
	a.printPage(p, search)
	return nil
}

func (a *App) setListing(p catalog.Page, search string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.current = listing{page: p.Page, pages: p.Pages, search: search}
}

// startSearch creates the debounced searcher and prints its results as they
// arrive.
func (a *App) startSearch(ctx context.Context) {
	s := a.catalog.NewSearcher(ctx, a.config.SearchDebounce)
	a.searcher = s
	go func() {
		for res := range s.Results() {
			if res.Err != nil {
				a.println(a.message(res.Err))
				continue
			}
			a.setListing(res.Page, res.Query)
			a.printPage(res.Page, res.Query)
		}
	}()
}

func (a *App) printPage(p catalog.Page, search string) {
	var b strings.Builder

	if search != "" {
		fmt.Fprintf(&b, "%s: %q\n", a.t("search"), search)
	}
	if len(p.Items) == 0 {
		if search != "" {
			fmt.Fprintf(&b, "%s. %s\n", a.t("no_products_found"), a.t("try_different_search"))
		} else {
			fmt.Fprintln(&b, a.t("no_products_available"))
		}
		a.printf("%s", b.String())
		return
	}

	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%s\t%s\t%s\t%s\t%s\n",
		a.t("article_number"), a.t("product_name"), a.t("price"), a.t("unit"), a.t("stock"))
	for _, it := range p.Items {
		stock := strconv.Itoa(it.Stock)
		if it.IsLowStock() {
			stock += " !"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			it.ID, it.ArticleNumber, it.Product, it.Price, it.Unit, stock)
	}
	tw.Flush()

	fmt.Fprintf(&b, "%s %d %s %d (%d %s)\n",
		a.t("page"), p.Page, a.t("of"), max(p.Pages, 1), p.Total, a.t("total_products"))
	if p.Pages > 1 {
		b.WriteString(pager(p.Page, p.Pages))
		b.WriteString("\n")
	}
	a.printf("%s", b.String())
}

// pager renders the page window with the current page in brackets.
func pager(current, total int) string {
	window := catalog.PageWindow(current, total, catalog.PagerWidth)
	parts := make([]string, 0, len(window))
	for _, n := range window {
		if n == current {
			parts = append(parts, fmt.Sprintf("[%d]", n))
		} else {
			parts = append(parts, strconv.Itoa(n))
		}
	}
	return strings.Join(parts, " ")
}

// Show prints every field of one product.
func (a *App) Show(ctx context.Context, id string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if id == "" {
		return a.usage("show <id>")
	}
	p, err := a.catalog.Get(ctx, api.ID(id))
	if err != nil {
		return a.report(err)
	}
	a.printProduct(p)
	return nil
}

func (a *App) printProduct(p catalog.Product) {
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%s\n", p.ID)
	fmt.Fprintf(tw, "%s\t%s\n", a.t("article_number"), p.ArticleNumber)
	fmt.Fprintf(tw, "%s\t%s\n", a.t("product_name"), p.Product)
	fmt.Fprintf(tw, "%s\t%s\n", a.t("in_price"), p.InPrice)
	fmt.Fprintf(tw, "%s\t%s\n", a.t("price"), p.Price)
	fmt.Fprintf(tw, "%s\t%s\n", a.t("unit"), p.Unit)
	fmt.Fprintf(tw, "%s\t%d\n", a.t("stock"), p.Stock)
	fmt.Fprintf(tw, "%s\t%s\n", a.t("description"), p.Description)
	tw.Flush()
	a.printf("%s", b.String())
}

// Add asks for a new product and creates it.
func (a *App) Add(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	p, err := a.productForm(catalog.Product{}, true)
	if err != nil {
		return err
	}
	created, err := a.catalog.Create(ctx, p)
	if err != nil {
		return a.report(err)
	}
	a.printf("%s (ID %s)\n", a.t("product_saved"), created.ID)
	return nil
}

// Edit loads a product, asks for changes and saves it. Empty answers keep
// the current values.
func (a *App) Edit(ctx context.Context, id string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if id == "" {
		return a.usage("edit <id>")
	}
	cur, err := a.catalog.Get(ctx, api.ID(id))
	if err != nil {
		return a.report(err)
	}
	p, err := a.productForm(cur, false)
	if err != nil {
		return err
	}
	if _, err := a.catalog.Update(ctx, api.ID(id), p); err != nil {
		return a.report(err)
	}
	a.println(a.t("product_saved"))
	return nil
}

// Delete removes a product after confirmation.
func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if id == "" {
		return a.usage("delete <id>")
	}
	answer, err := getSimpleText(a.reader, fmt.Sprintf("%s %s %s? (%s/%s)",
		a.t("delete"), id, a.t("confirm"), a.t("yes"), a.t("no")), a)
	if err != nil {
		return err
	}
	if !confirmed(answer, a.t("yes")) {
		a.println(a.t("cancel"))
		return nil
	}
	if err := a.catalog.Delete(ctx, api.ID(id)); err != nil {
		return a.report(err)
	}
	a.println(a.t("product_deleted"))
	return nil
}

// productForm asks for every product field, starting from base. All
// failed checks are printed; the first one is returned.
func (a *App) productForm(base catalog.Product, isNew bool) (catalog.Product, error) {
	amount := func(v catalog.Amount) string {
		if isNew {
			return ""
		}
		return v.String()
	}
	stock := ""
	if !isNew {
		stock = strconv.Itoa(base.Stock)
	}

	fields := []struct {
		key     string
		current string
	}{
		{key: "article_number", current: base.ArticleNumber},
		{key: "product_name", current: base.Product},
		{key: "in_price", current: amount(base.InPrice)},
		{key: "price", current: amount(base.Price)},
		{key: "unit", current: base.Unit},
		{key: "stock", current: stock},
	}
	answers := make([]string, len(fields))
	for i, f := range fields {
		prompt := a.t(f.key)
		if f.current != "" {
			prompt += " [" + f.current + "]"
		}
		v, err := getSimpleText(a.reader, prompt, a)
		if err != nil {
			return catalog.Product{}, err
		}
		if v == "" {
			v = f.current
		}
		answers[i] = v
	}
	article, name, inPrice, price, unit, stockText := answers[0], answers[1], answers[2], answers[3], answers[4], answers[5]

	description, err := getMultiline(a.reader, a.t("description"), a)
	if err != nil {
		return catalog.Product{}, err
	}
	if description == "" {
		description = base.Description
	}

	errs := validate.Product(article, name, price)
	if inPrice != "" && !validate.Price(inPrice) {
		errs = append(errs, &validate.Error{Field: "in_price", Key: "price_invalid", Message: "Valid price is required"})
	}
	stockN := 0
	if stockText != "" {
		n, err := strconv.Atoi(stockText)
		if err != nil || n < 0 {
			errs = append(errs, &validate.Error{Field: "stock", Key: "stock_invalid", Message: "Stock must be a whole number"})
		}
		stockN = n
	}
	if len(errs) > 0 {
		for _, e := range errs {
			a.println(a.lang.Translate(e.Key, e.Message))
		}
		return catalog.Product{}, errs.Err()
	}

	p := base
	p.ArticleNumber = article
	p.Product = name
	p.Price = parseAmount(price)
	p.InPrice = parseAmount(inPrice)
	p.Unit = unit
	p.Stock = stockN
	p.Description = description
	return p, nil
}

func parseAmount(s string) catalog.Amount {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return catalog.Amount(v)
}
