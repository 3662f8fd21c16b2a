package analytics

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"p9e.in/ascomp/models"
)

// TopPartsLimit caps the defective-parts ranking.
const TopPartsLimit = 10

// SiteStat is one site's share of RMAs.
type SiteStat struct {
	Site  string          `json:"site"`
	Count int             `json:"count"`
	Open  int             `json:"open"`
	Cost  decimal.Decimal `json:"cost"`
}

// PartStat counts RMAs raised for one defective part.
type PartStat struct {
	PartNumber string `json:"partNumber"`
	PartName   string `json:"partName"`
	Count      int    `json:"count"`
}

// MonthStat is one calendar month of raised RMAs.
type MonthStat struct {
	Month      string          `json:"month"` // YYYY-MM
	Count      int             `json:"count"`
	Cost       decimal.Decimal `json:"cost"`
	GrowthRate float64         `json:"growthRate"`
}

// Dashboard is the aggregate view over a set of RMAs.
type Dashboard struct {
	TotalRMAs   int                   `json:"totalRmas"`
	OpenRMAs    int                   `json:"openRmas"`
	ByStatus    map[string]int        `json:"byStatus"`
	ByPriority  map[string]int        `json:"byPriority"`
	ByWarranty  map[string]int        `json:"byWarranty"`
	TotalCost   decimal.Decimal       `json:"totalCost"`
	AverageCost decimal.Decimal       `json:"averageCost"`
	BySite      []SiteStat            `json:"bySite"`
	TopParts    []PartStat            `json:"topParts"`
	Monthly     []MonthStat           `json:"monthly"`
	Turnaround  *StatisticalSummary   `json:"turnaroundDays,omitempty"`
	OpenDTRs    int64                 `json:"openDtrs"`
	Reports     int64                 `json:"ascompReports"`
	Charts      map[string]*ChartData `json:"charts"`
}

const unknown = "Unknown"

func orUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return unknown
	}
	return s
}

// Summarize aggregates rmas. Costs are summed exactly; the average is
// rounded to two places.
func Summarize(rmas []models.RMA) *Dashboard {
	d := &Dashboard{
		TotalRMAs:  len(rmas),
		ByStatus:   make(map[string]int),
		ByPriority: make(map[string]int),
		ByWarranty: make(map[string]int),
		TotalCost:  decimal.Zero,
		Charts:     make(map[string]*ChartData),
	}
	for _, s := range models.RMAStatuses {
		d.ByStatus[s] = 0
	}
	for _, p := range models.Priorities {
		d.ByPriority[p] = 0
	}

	sites := map[string]*SiteStat{}
	parts := map[string]*PartStat{}
	months := map[string]*MonthStat{}
	var turnaround []float64

	for _, r := range rmas {
		d.ByStatus[orUnknown(r.Status)]++
		d.ByPriority[orUnknown(r.Priority)]++
		d.ByWarranty[orUnknown(r.WarrantyStatus)]++
		d.TotalCost = d.TotalCost.Add(r.EstimatedCost)
		if r.IsOpen() {
			d.OpenRMAs++
		}

		site := orUnknown(r.SiteName)
		ss, ok := sites[site]
		if !ok {
			ss = &SiteStat{Site: site, Cost: decimal.Zero}
			sites[site] = ss
		}
		ss.Count++
		ss.Cost = ss.Cost.Add(r.EstimatedCost)
		if r.IsOpen() {
			ss.Open++
		}

		if pn := strings.TrimSpace(r.DefectivePartNumber); pn != "" {
			ps, ok := parts[pn]
			if !ok {
				ps = &PartStat{PartNumber: pn, PartName: r.DefectivePartName}
				parts[pn] = ps
			}
			ps.Count++
		}

		if !r.RMARaisedDate.IsZero() {
			key := r.RMARaisedDate.Time().Format("2006-01")
			ms, ok := months[key]
			if !ok {
				ms = &MonthStat{Month: key, Cost: decimal.Zero}
				months[key] = ms
			}
			ms.Count++
			ms.Cost = ms.Cost.Add(r.EstimatedCost)

			if dd := r.Shipping.Return.DeliveredDate; dd != nil && !dd.IsZero() {
				days := dd.Time().Sub(r.RMARaisedDate.Time()).Hours() / 24
				if days >= 0 {
					turnaround = append(turnaround, days)
				}
			}
		}
	}

	if len(rmas) > 0 {
		d.AverageCost = d.TotalCost.Div(decimal.NewFromInt(int64(len(rmas)))).Round(2)
	}

	for _, s := range sites {
		d.BySite = append(d.BySite, *s)
	}
	sort.Slice(d.BySite, func(i, j int) bool {
		if d.BySite[i].Count != d.BySite[j].Count {
			return d.BySite[i].Count > d.BySite[j].Count
		}
		return d.BySite[i].Site < d.BySite[j].Site
	})

	for _, p := range parts {
		d.TopParts = append(d.TopParts, *p)
	}
	sort.Slice(d.TopParts, func(i, j int) bool {
		if d.TopParts[i].Count != d.TopParts[j].Count {
			return d.TopParts[i].Count > d.TopParts[j].Count
		}
		return d.TopParts[i].PartNumber < d.TopParts[j].PartNumber
	})
	if len(d.TopParts) > TopPartsLimit {
		d.TopParts = d.TopParts[:TopPartsLimit]
	}

	for _, m := range months {
		d.Monthly = append(d.Monthly, *m)
	}
	sort.Slice(d.Monthly, func(i, j int) bool { return d.Monthly[i].Month < d.Monthly[j].Month })
	for i := 1; i < len(d.Monthly); i++ {
		d.Monthly[i].GrowthRate = GrowthRate(float64(d.Monthly[i-1].Count), float64(d.Monthly[i].Count))
	}

	d.Turnaround = Statistics(turnaround)
	d.Charts["status"] = statusChart(d)
	d.Charts["sites"] = siteChart(d)
	d.Charts["monthly"] = monthlyChart(d)
	return d
}

func statusChart(d *Dashboard) *ChartData {
	var labels []string
	var values []float64
	for _, s := range models.RMAStatuses {
		labels = append(labels, s)
		values = append(values, float64(d.ByStatus[s]))
	}
	if n := d.ByStatus[unknown]; n > 0 {
		labels = append(labels, unknown)
		values = append(values, float64(n))
	}
	return NewChart("doughnut", "RMAs by status", labels, values)
}

func siteChart(d *Dashboard) *ChartData {
	labels := make([]string, 0, len(d.BySite))
	values := make([]float64, 0, len(d.BySite))
	for _, s := range d.BySite {
		labels = append(labels, s.Site)
		values = append(values, float64(s.Count))
	}
	return NewChart("bar", "RMAs by site", labels, values)
}

func monthlyChart(d *Dashboard) *ChartData {
	labels := make([]string, 0, len(d.Monthly))
	values := make([]float64, 0, len(d.Monthly))
	for _, m := range d.Monthly {
		labels = append(labels, m.Month)
		values = append(values, float64(m.Count))
	}
	return NewChart("line", "RMAs raised per month", labels, values)
}
