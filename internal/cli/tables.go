package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/xavierca1/ghostreach/internal/entity"
	"github.com/xavierca1/ghostreach/internal/usecase"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func renderLeads(w io.Writer, leads []entity.Lead) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Email", "Name", "Role", "Company", "Status"})
	for _, l := range leads {
		t.AppendRow(table.Row{l.ID, l.Email, l.Name, l.Role, l.Company, l.Status})
	}
	t.AppendFooter(table.Row{"", "Total", len(leads)})
	t.Render()
}

func renderCounts(w io.Writer, counts map[entity.LeadStatus]int) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Status", "Leads"})
	t.AppendRow(table.Row{entity.LeadStatusNew, counts[entity.LeadStatusNew]})
	t.AppendRow(table.Row{entity.LeadStatusContacted, counts[entity.LeadStatusContacted]})
	t.Render()
}

func renderEntries(w io.Writer, entries []entity.Entry) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Timestamp", "Source", "Email", "Company", "Score", "Run"})
	for _, e := range entries {
		t.AppendRow(table.Row{
			e.String(entity.EntryTimestamp),
			e.String(entity.EntrySource),
			e.String(entity.EntryEmail),
			e.String(entity.EntryCompany),
			fmt.Sprint(e[entity.EntryScore]),
			e.String(entity.EntryRunID),
		})
	}
	t.Render()
}

func renderHarvest(w io.Writer, out *usecase.HarvestLeadsOutput) {
	if out.Msg != "" {
		fmt.Fprintln(w, out.Msg)
		return
	}
	t := newTable(w)
	t.SetTitle("Harvest " + out.RunID)
	t.AppendHeader(table.Row{"Fetched", "Failed", "Harvested", "Logged", "Inserted", "Already present"})
	t.AppendRow(table.Row{out.Fetched, out.Failed, out.Harvested, out.Logged, out.Inserted, out.AlreadyPresent})
	t.Render()
}

func renderOutreach(w io.Writer, out *usecase.SendOutreachOutput) {
	if out.Msg != "" {
		fmt.Fprintln(w, out.Msg)
		return
	}
	t := newTable(w)
	t.SetTitle("Outreach")
	t.AppendHeader(table.Row{"Pending", "Sent", "Failed"})
	t.AppendRow(table.Row{out.Pending, out.Sent, out.Failed})
	t.Render()
}
