package whatsapp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposeMessage_FullOrder(t *testing.T) {
	msg := ComposeMessage(MessageInput{
		StoreName: "Belle Boutik",
		Currency:  "Rs",
		Items: []Item{
			{Name: "Bonnet", Quantity: 2, LineTotal: 350},
			{Name: "Scarf", Quantity: 1, LineTotal: 200},
		},
		Total: 550,
		Buyer: Buyer{
			Name:    "Aisha",
			Phone:   "+23059000000",
			Address: "Port Louis",
			Notes:   "Deliver after 5pm",
		},
		PaymentLabel: "Cash on delivery",
	})

	expected := strings.Join([]string{
		"Hello Belle Boutik! I would like to place an order.",
		"",
		"Bonnet x2 — Rs 350",
		"Scarf x1 — Rs 200",
		"",
		"Total: Rs 550",
		"",
		"Name: Aisha",
		"Phone: +23059000000",
		"Address: Port Louis",
		"Notes: Deliver after 5pm",
		"Payment: Cash on delivery",
		"",
		"Thank you!",
	}, "\n")

	assert.Equal(t, expected, msg)
}

func TestComposeMessage_OmitsEmptyBuyerFields(t *testing.T) {
	msg := ComposeMessage(MessageInput{
		Currency: "Rs",
		Items:    []Item{{Name: "Bonnet", Quantity: 2, LineTotal: 350}},
		Total:    350,
		Buyer: Buyer{
			Name:  "Aisha",
			Phone: "+23059000000",
		},
		PaymentLabel: "Cash on delivery",
	})

	assert.Contains(t, msg, "Hello! I would like to place an order.")
	assert.Contains(t, msg, "Bonnet x2 — Rs 350")
	assert.Contains(t, msg, "Total: Rs 350")
	assert.Contains(t, msg, "Name: Aisha")
	assert.Contains(t, msg, "Phone: +23059000000")

	// 空の項目はプレースホルダではなく行ごと消える
	assert.NotContains(t, msg, "Address:")
	assert.NotContains(t, msg, "Notes:")
}

func TestComposeMessage_Deterministic(t *testing.T) {
	in := MessageInput{
		StoreName:    "Belle Boutik",
		Currency:     "Rs",
		Items:        []Item{{Name: "Bonnet", Quantity: 2, LineTotal: 350}},
		Total:        350,
		Buyer:        Buyer{Phone: "+23059000000"},
		PaymentLabel: "Pay by scan",
	}

	assert.Equal(t, ComposeMessage(in), ComposeMessage(in))
}
