package cli

const helpContent = `
UNDERSTANDING FUNDAMENTAL DATA

P/E RATIO (Price to Earnings)
  What: Price you pay for each ₹1 of company earnings
  Good: 15-25 (fairly valued)
  Bad:  >40 (expensive) or <10 (might indicate problems)

ROE (Return on Equity)
  What: How efficiently the company uses shareholder money
  Good: >15%   Average: 10-15%   Bad: <10% or negative

DEBT-TO-EQUITY
  What: How much debt the company carries against equity
  Good: <0.5   Average: 0.5-1.0   Bad: >2.0

PROFIT MARGIN
  What: Share of revenue that becomes profit
  Good: >15%   Average: 5-15%   Bad: <5% or negative

REVENUE GROWTH
  What: Year-over-year increase in sales
  Good: >10%   Average: 5-10%   Bad: negative

FREE CASH FLOW
  What: Cash generated after capital expenditure
  Good: positive   Bad: negative (burning cash)

BETA
  <1: less volatile than the market   >1: more volatile

INVESTMENT SCORE (0-100)
  P/E 30 + ROE 20 + Debt-to-Equity 20 + Margin 15 + Growth 15.
  80+ Excellent, 60-79 Good, 40-59 Average, 20-39 Weak, below 20 Poor.
  Missing data scores zero for that criterion and is listed in the report.

TECHNICAL INDICATORS
  SMA 7/14: average close over the last 7 or 14 sessions.
  Volatility: sample standard deviation of daily returns.
  Best/Worst Day: largest single-session gain and loss.

POPULAR SYMBOLS
  RELIANCE.NS  TCS.NS  HDFCBANK.NS  INFY.NS  HINDUNILVR.NS
  ITC.NS  BHARTIARTL.NS  SBIN.NS

Use .NS for NSE stocks and .BO for BSE stocks.
`
