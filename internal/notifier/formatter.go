package notifier

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"EquityScope/internal/model"
	"EquityScope/internal/recorder"
	"EquityScope/internal/scoring"
)

const (
	rule      = "============================================================"
	thinRule  = "------------------------------------------------------------"
	labelWide = 22
)

// telegramLimit leaves headroom under Telegram's 4096 character cap.
const telegramLimit = 4000

// FormatAnalysisReport renders the full plain-text report for one stock.
func FormatAnalysisReport(a *model.Analysis) string {
	var b strings.Builder
	f := a.Fundamentals

	b.WriteString(rule + "\n")
	b.WriteString(fmt.Sprintf("EQUITY ANALYSIS REPORT: %s\n", a.Symbol))
	if f.CompanyName != nil {
		b.WriteString(*f.CompanyName + "\n")
	}
	b.WriteString(fmt.Sprintf("Sector: %s | Industry: %s\n", optionalString(f.Sector), optionalString(f.Industry)))
	b.WriteString(fmt.Sprintf("Generated: %s | Source: %s\n", a.AnalyzedAt.Format("2006-01-02 15:04 MST"), a.Source))
	b.WriteString(rule + "\n\n")

	writePriceSection(&b, a)
	writeDailySection(&b, a)
	writeFundamentalsSection(&b, f)
	writeScoreSection(&b, a.Score)
	writeFlagsSection(&b, a.Flags)

	b.WriteString(rule + "\n")
	b.WriteString("For information only. Not investment advice.\n")
	return b.String()
}

func line(b *strings.Builder, label, value string) {
	b.WriteString(fmt.Sprintf("  %-*s %s\n", labelWide, label+":", value))
}

func unsignedPercent(v float64) string { return fmt.Sprintf("%.2f%%", v) }

func writePriceSection(b *strings.Builder, a *model.Analysis) {
	ind := a.Indicators
	f := a.Fundamentals
	if ind == nil {
		b.WriteString("PRICE SUMMARY\n")
		line(b, "Current Price", FormatOptional(f.CurrentPrice, FormatINR))
		b.WriteString("\n")
		return
	}

	b.WriteString(fmt.Sprintf("PRICE SUMMARY (%s to %s, %d trading days)\n",
		ind.FirstDate.Format("2006-01-02"), ind.LastDate.Format("2006-01-02"), ind.TradingDays))
	line(b, "Current Price", FormatINR(ind.CurrentPrice))
	line(b, "Period High / Low", FormatINR(ind.PeriodHigh)+" / "+FormatINR(ind.PeriodLow))
	line(b, "Period Change", FormatPercent(ind.PeriodChange))
	line(b, "Average Volume", groupIndian(strconv.FormatInt(int64(ind.AvgVolume+0.5), 10)))
	line(b, "52-Week High / Low", FormatOptional(f.Week52High, FormatINR)+" / "+FormatOptional(f.Week52Low, FormatINR))
	line(b, "Market Cap", formatMarketCap(f.MarketCap))
	b.WriteString("\n")

	b.WriteString("TECHNICAL INDICATORS\n")
	line(b, "SMA (7-day)", FormatOptional(ind.SMA7, FormatINR))
	line(b, "SMA (14-day)", FormatOptional(ind.SMA14, FormatINR))
	line(b, "RSI (14)", FormatOptional(ind.RSI14, FormatRatio))
	line(b, "Volatility (daily)", FormatOptional(ind.Volatility, unsignedPercent))
	line(b, "Avg Daily Return", FormatOptional(ind.AvgDailyReturn, FormatPercent))
	line(b, "Best Day", formatDay(ind.BestDay))
	line(b, "Worst Day", formatDay(ind.WorstDay))
	b.WriteString("\n")
}

func formatMarketCap(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return fmt.Sprintf("%s (%s)", FormatLargeINR(*v), scoring.MarketCapCategory(v))
}

// writeDailySection prints one row per observation. The first day has no
// prior close, so its change is N/A.
func writeDailySection(b *strings.Builder, a *model.Analysis) {
	if len(a.Observations) == 0 {
		return
	}
	changes := make(map[string]float64)
	if a.Indicators != nil {
		for _, r := range a.Indicators.DailyReturns {
			changes[r.Date.Format("2006-01-02")] = r.Percent
		}
	}

	b.WriteString("DAILY DATA\n")
	b.WriteString(fmt.Sprintf("  %-10s %12s %12s %12s %12s %14s %9s\n",
		"Date", "Open", "High", "Low", "Close", "Volume", "Change"))
	b.WriteString("  " + thinRule + "\n")
	for _, o := range a.Observations {
		change := NotAvailable
		if pct, ok := changes[o.Date.Format("2006-01-02")]; ok {
			change = FormatPercent(pct)
		}
		b.WriteString(fmt.Sprintf("  %-10s %12s %12s %12s %12s %14s %9s\n",
			o.Date.Format("2006-01-02"), FormatINR(o.Open), FormatINR(o.High), FormatINR(o.Low), FormatINR(o.Close),
			groupIndian(strconv.FormatInt(o.Volume, 10)), change))
	}
	b.WriteString("\n")
}

func formatDay(d *model.DailyReturn) string {
	if d == nil {
		return NotAvailable
	}
	return fmt.Sprintf("%s (%s)", d.Date.Format("2006-01-02"), FormatPercent(d.Percent))
}

func withReading(value string, m scoring.Metric, v *float64) string {
	if v == nil {
		return value
	}
	return fmt.Sprintf("%-10s %s", value, scoring.Interpret(m, v))
}

func writeFundamentalsSection(b *strings.Builder, f model.FundamentalSnapshot) {
	b.WriteString("FUNDAMENTALS\n")
	line(b, "P/E Ratio", withReading(FormatOptional(f.PERatio, FormatRatio), scoring.MetricPE, f.PERatio))
	line(b, "P/B Ratio", withReading(FormatOptional(f.PBRatio, FormatRatio), scoring.MetricPB, f.PBRatio))
	line(b, "ROE", withReading(FormatOptional(f.ROE, unsignedPercent), scoring.MetricROE, f.ROE))
	line(b, "Debt-to-Equity", withReading(FormatOptional(f.DebtToEquity, FormatRatio), scoring.MetricDebtToEquity, f.DebtToEquity))
	line(b, "Profit Margin", withReading(FormatOptional(f.ProfitMargin, unsignedPercent), scoring.MetricMargin, f.ProfitMargin))
	line(b, "Revenue Growth", withReading(FormatOptional(f.RevenueGrowth, FormatPercent), scoring.MetricGrowth, f.RevenueGrowth))
	line(b, "EPS", FormatOptional(f.EPS, FormatINR))
	line(b, "Beta", withReading(FormatOptional(f.Beta, FormatRatio), scoring.MetricBeta, f.Beta))
	line(b, "Dividend Yield", FormatOptional(f.DividendYield, unsignedPercent))

	fcf := NotAvailable
	if f.FreeCashFlowPositive != nil {
		fcf = "Negative"
		if *f.FreeCashFlowPositive {
			fcf = "Positive"
		}
	}
	line(b, "Free Cash Flow", fcf)

	target := FormatOptional(f.TargetPrice, FormatINR)
	if f.TargetPrice != nil && f.CurrentPrice != nil && *f.CurrentPrice > 0 {
		upside := (*f.TargetPrice - *f.CurrentPrice) / *f.CurrentPrice * 100
		target += fmt.Sprintf(" (%s vs current)", FormatPercent(upside))
	}
	line(b, "Analyst Target", target)
	rec := NotAvailable
	if f.Recommendation != nil && *f.Recommendation != "" {
		rec = strings.ToUpper(strings.ReplaceAll(*f.Recommendation, "_", " "))
	}
	line(b, "Recommendation", rec)
	b.WriteString("\n")
}

func writeScoreSection(b *strings.Builder, s model.ScoreResult) {
	b.WriteString(fmt.Sprintf("INVESTMENT SCORE: %d/%d (%s)\n", s.Total, scoring.MaxScore, s.Band))
	for _, c := range s.Criteria() {
		pts := fmt.Sprintf("%2d/%d", c.Points, c.Max)
		if !c.Available {
			pts += "  (" + NotAvailable + ")"
		}
		line(b, c.Name, pts)
	}
	if len(s.Missing) > 0 {
		b.WriteString(fmt.Sprintf("  Missing data: %s\n", strings.Join(s.Missing, ", ")))
	}
	b.WriteString("  " + scoring.Interpretation(s.Band) + "\n\n")
}

func writeFlagsSection(b *strings.Builder, fs model.FlagSet) {
	b.WriteString(fmt.Sprintf("RED FLAGS (%d)\n", len(fs.Red)))
	if len(fs.Red) == 0 {
		b.WriteString("  None\n")
	}
	for _, fl := range fs.Red {
		b.WriteString(fmt.Sprintf("  [-] %s: %s\n", fl.Title, fl.Description))
	}
	b.WriteString(fmt.Sprintf("\nGREEN FLAGS (%d)\n", len(fs.Green)))
	if len(fs.Green) == 0 {
		b.WriteString("  None\n")
	}
	for _, fl := range fs.Green {
		b.WriteString(fmt.Sprintf("  [+] %s: %s\n", fl.Title, fl.Description))
	}
	b.WriteString("\n")
}

// FormatComparison renders a side-by-side table, one column per symbol in
// input order. Failed symbols show ERROR and their cause below the table.
func FormatComparison(entries []model.ComparisonEntry) string {
	const col = 16
	var b strings.Builder

	b.WriteString(rule + "\n")
	b.WriteString("STOCK COMPARISON\n")
	b.WriteString(rule + "\n")

	row := func(label string, cell func(a *model.Analysis) string) {
		b.WriteString(fmt.Sprintf("%-18s", label))
		for _, e := range entries {
			v := "ERROR"
			if e.Analysis != nil {
				v = cell(e.Analysis)
			}
			b.WriteString(fmt.Sprintf("%*s", col, v))
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("%-18s", "Metric"))
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("%*s", col, e.Symbol))
	}
	b.WriteString("\n" + thinRule + "\n")

	row("Price", func(a *model.Analysis) string {
		if a.Indicators == nil {
			return FormatOptional(a.Fundamentals.CurrentPrice, FormatINR)
		}
		return FormatINR(a.Indicators.CurrentPrice)
	})
	row("Period Change", func(a *model.Analysis) string {
		if a.Indicators == nil {
			return NotAvailable
		}
		return FormatPercent(a.Indicators.PeriodChange)
	})
	row("Volatility", func(a *model.Analysis) string {
		if a.Indicators == nil {
			return NotAvailable
		}
		return FormatOptional(a.Indicators.Volatility, unsignedPercent)
	})
	row("P/E Ratio", func(a *model.Analysis) string { return FormatOptional(a.Fundamentals.PERatio, FormatRatio) })
	row("ROE", func(a *model.Analysis) string { return FormatOptional(a.Fundamentals.ROE, unsignedPercent) })
	row("Debt-to-Equity", func(a *model.Analysis) string { return FormatOptional(a.Fundamentals.DebtToEquity, FormatRatio) })
	row("Profit Margin", func(a *model.Analysis) string { return FormatOptional(a.Fundamentals.ProfitMargin, unsignedPercent) })
	row("Revenue Growth", func(a *model.Analysis) string { return FormatOptional(a.Fundamentals.RevenueGrowth, FormatPercent) })
	row("Market Cap", func(a *model.Analysis) string { return FormatOptional(a.Fundamentals.MarketCap, FormatLargeINR) })
	row("Cap Class", func(a *model.Analysis) string { return scoring.MarketCapCategory(a.Fundamentals.MarketCap) })
	b.WriteString(thinRule + "\n")
	row("Score", func(a *model.Analysis) string { return fmt.Sprintf("%d/%d", a.Score.Total, scoring.MaxScore) })
	row("Rating", func(a *model.Analysis) string { return string(a.Score.Band) })
	row("Red Flags", func(a *model.Analysis) string { return strconv.Itoa(len(a.Flags.Red)) })
	row("Green Flags", func(a *model.Analysis) string { return strconv.Itoa(len(a.Flags.Green)) })
	b.WriteString(rule + "\n")

	var best *model.Analysis
	for _, e := range entries {
		if e.Analysis != nil && (best == nil || e.Analysis.Score.Total > best.Score.Total) {
			best = e.Analysis
		}
	}
	if best != nil {
		b.WriteString(fmt.Sprintf("Highest score: %s (%d/%d, %s)\n", best.Symbol, best.Score.Total, scoring.MaxScore, best.Score.Band))
	}
	for _, e := range entries {
		if e.Err != nil {
			b.WriteString(fmt.Sprintf("%s: %v\n", e.Symbol, e.Err))
		}
	}
	return b.String()
}

// FormatTelegramReport wraps a plain-text report for HTML parse mode.
func FormatTelegramReport(text string) string {
	r := []rune(text)
	if len(r) > telegramLimit-20 {
		text = string(r[:telegramLimit-40]) + "\n...(truncated)"
	}
	return "<pre>" + html.EscapeString(text) + "</pre>"
}

// FormatWatchlistSummary formats the scheduled watchlist run for chat.
func FormatWatchlistSummary(entries []model.ComparisonEntry, at time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>EquityScope Watchlist</b> | %s\n\n", at.Format("2006-01-02")))
	if len(entries) == 0 {
		b.WriteString("Watchlist is empty.\n")
		return b.String()
	}
	for _, e := range entries {
		if e.Err != nil {
			b.WriteString(fmt.Sprintf("⚠️ <b>%s</b>: %s\n", html.EscapeString(e.Symbol), html.EscapeString(e.Err.Error())))
			continue
		}
		a := e.Analysis
		price, change := NotAvailable, NotAvailable
		if a.Indicators != nil {
			price = FormatINR(a.Indicators.CurrentPrice)
			change = FormatPercent(a.Indicators.PeriodChange)
		}
		b.WriteString(fmt.Sprintf("<b>%s</b>: %d/%d %s | %s (%s) | 🔴%d 🟢%d\n",
			html.EscapeString(a.Symbol), a.Score.Total, scoring.MaxScore, a.Score.Band,
			price, change, len(a.Flags.Red), len(a.Flags.Green)))
	}
	return b.String()
}

// FormatHistory formats recorded analyses of one symbol for chat.
func FormatHistory(symbol string, entries []recorder.HistoryEntry) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🕘 <b>History %s</b>\n\n", html.EscapeString(symbol)))
	if len(entries) == 0 {
		b.WriteString("No recorded analyses.\n")
		return b.String()
	}
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("%s  %3d/%d %-9s %s  🔴%d 🟢%d\n",
			e.AnalyzedAt.Format("2006-01-02 15:04"), e.TotalScore, scoring.MaxScore, e.Band,
			FormatOptional(e.CurrentPrice, FormatINR), len(e.RedFlags), len(e.GreenFlags)))
	}
	return b.String()
}
