// Package whatsapp は注文確認メッセージの整形とチャット用ディープリンクの生成を行う。
// どちらも純粋な文字列処理で、I/Oは行わない。
package whatsapp

import (
	"fmt"
	"strings"
)

// メッセージ1行分の明細。
type Item struct {
	Name      string
	Quantity  int64
	LineTotal int64
}

type Buyer struct {
	Name    string
	Phone   string
	Address string
	Notes   string
}

type MessageInput struct {
	StoreName    string
	Currency     string // 例: "Rs"
	Items        []Item
	Total        int64
	Buyer        Buyer
	PaymentLabel string
}

// ComposeMessage は確定した注文内容から決定的なメッセージ本文を組み立てる。
// 行の並びは固定。空の項目は行ごと省略する（プレースホルダは出さない）。
func ComposeMessage(in MessageInput) string {
	var b strings.Builder

	if in.StoreName != "" {
		fmt.Fprintf(&b, "Hello %s! I would like to place an order.\n", in.StoreName)
	} else {
		b.WriteString("Hello! I would like to place an order.\n")
	}
	b.WriteString("\n")

	for _, it := range in.Items {
		fmt.Fprintf(&b, "%s x%d — %s %d\n", it.Name, it.Quantity, in.Currency, it.LineTotal)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Total: %s %d\n", in.Currency, in.Total)
	b.WriteString("\n")

	if in.Buyer.Name != "" {
		fmt.Fprintf(&b, "Name: %s\n", in.Buyer.Name)
	}
	if in.Buyer.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", in.Buyer.Phone)
	}
	if in.Buyer.Address != "" {
		fmt.Fprintf(&b, "Address: %s\n", in.Buyer.Address)
	}
	if in.Buyer.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", in.Buyer.Notes)
	}
	if in.PaymentLabel != "" {
		fmt.Fprintf(&b, "Payment: %s\n", in.PaymentLabel)
	}
	b.WriteString("\n")

	b.WriteString("Thank you!")
	return b.String()
}
