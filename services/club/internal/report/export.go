package report

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

// exporter 将一类数据写成 CSV
type exporter func(ctx context.Context, r *Repository, f *Filter, now time.Time, w *csv.Writer) error

var exporters = map[string]exporter{
	"members":     exportMembers,
	"events":      exportEvents,
	"inventory":   exportInventory,
	"maintenance": exportMaintenance,
}

// ExportKinds 支持导出的数据类型
func ExportKinds() []string {
	return []string{"members", "events", "inventory", "maintenance"}
}

// Export 写出 CSV，kind 不支持时返回 false
func (r *Repository) Export(ctx context.Context, kind string, f *Filter, now time.Time, out io.Writer) (bool, error) {
	fn, ok := exporters[kind]
	if !ok {
		return false, nil
	}
	w := csv.NewWriter(out)
	if err := fn(ctx, r, f, now, w); err != nil {
		return true, err
	}
	w.Flush()
	return true, w.Error()
}

func date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

func exportMembers(ctx context.Context, r *Repository, f *Filter, now time.Time, w *csv.Writer) error {
	rep, err := r.Membership(ctx, f, now)
	if err != nil {
		return err
	}
	_ = w.Write([]string{"id", "membership_number", "dni", "first_name", "last_name", "email", "phone", "status", "start_date", "end_date"})
	for _, m := range rep.Members {
		_ = w.Write([]string{id(m.ID), m.MembershipNumber, id(m.DNI), m.FirstName, m.LastName, m.Email, m.Phone, m.Status, date(m.StartDate), date(m.EndDate)})
	}
	return nil
}

func exportEvents(ctx context.Context, r *Repository, f *Filter, now time.Time, w *csv.Writer) error {
	rep, err := r.Events(ctx, f)
	if err != nil {
		return err
	}
	_ = w.Write([]string{"id", "name", "date", "location", "status", "budget", "actual_cost", "approved"})
	for _, e := range rep.Events {
		_ = w.Write([]string{id(e.ID), e.Name, date(e.Date), e.Location, e.Status, money(e.Budget), money(e.ActualCost), strconv.FormatBool(e.Approved)})
	}
	return nil
}

func exportInventory(ctx context.Context, r *Repository, f *Filter, now time.Time, w *csv.Writer) error {
	rep, err := r.Inventory(ctx, f, now)
	if err != nil {
		return err
	}
	_ = w.Write([]string{"id", "sku", "name", "category", "current_stock", "min_stock", "unit_price", "status"})
	for _, p := range rep.Products {
		category := ""
		if p.Category != nil {
			category = p.Category.Name
		}
		_ = w.Write([]string{id(p.ID), p.SKU, p.Name, category, strconv.Itoa(p.CurrentStock), strconv.Itoa(p.MinStock), money(p.UnitPrice), p.Status})
	}
	return nil
}

func exportMaintenance(ctx context.Context, r *Repository, f *Filter, now time.Time, w *csv.Writer) error {
	rep, err := r.Maintenance(ctx, f)
	if err != nil {
		return err
	}
	_ = w.Write([]string{"id", "title", "category", "priority", "status", "location", "estimated_cost", "actual_cost"})
	for _, t := range rep.Tasks {
		_ = w.Write([]string{id(t.ID), t.Title, t.Category, t.Priority, t.Status, t.Location, money(t.EstimatedCost), money(t.ActualCost)})
	}
	return nil
}
