package server

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

type dashboardResponse struct {
	ActiveGroups      int                     `json:"activeGroups"`
	ActiveSubscribers int                     `json:"activeSubscribers"`
	RecentPayments    []recentPaymentResponse `json:"recentPayments"`
	RecentAuctions    []recentAuctionResponse `json:"recentAuctions"`
}

type recentPaymentResponse struct {
	PaymentDate    int64   `json:"paymentDate"`
	SubscriberName string  `json:"subscriberName"`
	GroupName      string  `json:"groupName"`
	MonthNumber    int     `json:"monthNumber"`
	AmountPaid     float64 `json:"amountPaid"`
}

type recentAuctionResponse struct {
	GroupName   string  `json:"groupName"`
	MonthNumber int     `json:"monthNumber"`
	DueDate     string  `json:"dueDate"`
	WinnerName  string  `json:"winnerName,omitempty"`
	PrizeAmount float64 `json:"prizeAmount"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := s.reports.Dashboard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := dashboardResponse{
		ActiveGroups:      dashboard.Stats.ActiveGroups,
		ActiveSubscribers: dashboard.Stats.ActiveSubscribers,
		RecentPayments:    make([]recentPaymentResponse, 0, len(dashboard.RecentPayments)),
		RecentAuctions:    make([]recentAuctionResponse, 0, len(dashboard.RecentAuctions)),
	}
	for _, p := range dashboard.RecentPayments {
		resp.RecentPayments = append(resp.RecentPayments, recentPaymentResponse{
			PaymentDate:    p.PaymentDate,
			SubscriberName: p.SubscriberName,
			GroupName:      p.GroupName,
			MonthNumber:    p.MonthNumber,
			AmountPaid:     p.AmountPaid,
		})
	}
	for _, a := range dashboard.RecentAuctions {
		resp.RecentAuctions = append(resp.RecentAuctions, recentAuctionResponse{
			GroupName:   a.GroupName,
			MonthNumber: a.MonthNumber,
			DueDate:     formatDate(a.DueDate),
			WinnerName:  a.WinnerName,
			PrizeAmount: a.PrizeAmount,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// beginCSV sets download headers and returns a writer primed with a UTF-8
// BOM so Excel opens the file cleanly.
func beginCSV(w http.ResponseWriter, filename string) (*csv.Writer, error) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return nil, err
	}
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	return cw, nil
}

// finishCSV flushes the writer and logs any write error accumulated along
// the way, such as a client hanging up mid-download.
func finishCSV(cw *csv.Writer, name string) {
	cw.Flush()
	if err := cw.Error(); err != nil {
		slog.Error("CSV write failed", "report", name, "error", err)
	}
}

func (s *Server) handleExportAuctions(w http.ResponseWriter, r *http.Request) {
	auctions, err := s.reports.AuctionHistory(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	cw, err := beginCSV(w, "auctions.csv")
	if err != nil {
		slog.Error("CSV write failed", "report", "auctions", "error", err)
		return
	}
	defer finishCSV(cw, "auctions")

	cw.Write([]string{"group", "month", "due_date", "winner", "prize_amount"})
	for _, a := range auctions {
		cw.Write([]string{
			a.GroupName,
			strconv.Itoa(a.MonthNumber),
			formatDate(a.DueDate),
			a.WinnerName,
			strconv.FormatFloat(a.PrizeAmount, 'f', 2, 64),
		})
	}
}

func (s *Server) handleExportPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := s.reports.PaymentHistory(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	cw, err := beginCSV(w, "payments.csv")
	if err != nil {
		slog.Error("CSV write failed", "report", "payments", "error", err)
		return
	}
	defer finishCSV(cw, "payments")

	cw.Write([]string{"payment_date", "subscriber", "group", "month", "amount_paid"})
	for _, p := range payments {
		cw.Write([]string{
			time.Unix(p.PaymentDate, 0).UTC().Format(time.DateOnly),
			p.SubscriberName,
			p.GroupName,
			strconv.Itoa(p.MonthNumber),
			strconv.FormatFloat(p.AmountPaid, 'f', 2, 64),
		})
	}
}

func (s *Server) handleExportDividends(w http.ResponseWriter, r *http.Request) {
	dividends, err := s.reports.DividendHistory(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	cw, err := beginCSV(w, "dividends.csv")
	if err != nil {
		slog.Error("CSV write failed", "report", "dividends", "error", err)
		return
	}
	defer finishCSV(cw, "dividends")

	cw.Write([]string{"group_id", "subscriber", "auction_date", "dividend_amount", "distribution_date"})
	for _, d := range dividends {
		cw.Write([]string{
			d.GroupID,
			d.SubscriberName,
			formatDate(d.AuctionDate),
			strconv.FormatFloat(d.DividendAmount, 'f', 2, 64),
			formatDate(d.DistributionDate),
		})
	}
}
