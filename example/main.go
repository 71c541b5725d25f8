// Command orderdemo demonstrates the gridquery library with a small order
// tracking domain.
//
// Build:
//
//	go build -o orderdemo ./example
//
// Usage:
//
//	./orderdemo fields
//	./orderdemo q --format compact
//	./orderdemo q --format compact --filter priority:ge:5 --sort priority --order desc --rows 5
//	./orderdemo q --format json --sort idCustomer --columns number,customer.name
//	./orderdemo q --format compact --filter placed:cn:2024-03-15
//
// Configuration is read from the environment, optionally via a .env file:
//
//	GRIDQUERY_PAGE_SIZE  default page size (default 5)
//	GRIDQUERY_LOG_LEVEL  zerolog level for skipped-directive diagnostics (default warn)
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/relux-works/skill-grid-query/gridquery"
	"github.com/relux-works/skill-grid-query/gridquery/cobraext"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Customer is referenced by orders through IDCustomer.
type Customer struct {
	ID   int
	Name string
	City string
}

// Order is the domain type for this example.
type Order struct {
	ID         int
	Number     string
	Priority   int
	Placed     time.Time
	Shipped    *time.Time
	Total      decimal.Decimal
	Ref        uuid.UUID
	Rush       bool
	IDCustomer int
	Customer   *Customer
}

// sampleOrders returns a fixed set of orders for demonstration purposes.
func sampleOrders() []*Order {
	customers := []*Customer{
		{ID: 1, Name: "Acme", City: "Utrecht"},
		{ID: 2, Name: "Globex", City: "Leiden"},
		{ID: 3, Name: "Initech", City: "Delft"},
	}
	day := func(d, h int) time.Time { return time.Date(2024, 3, d, h, 0, 0, 0, time.UTC) }
	shipped := func(t time.Time) *time.Time { return &t }

	orders := make([]*Order, 0, 12)
	for i := 1; i <= 12; i++ {
		c := customers[i%len(customers)]
		o := &Order{
			ID:         i,
			Number:     fmt.Sprintf("SO-%04d", 1000+i),
			Priority:   (i * 7) % 10,
			Placed:     day(10+i%6, 8+i),
			Total:      decimal.New(int64(i*1250), -2),
			Ref:        uuid.NewSHA1(uuid.NameSpaceOID, []byte(strconv.Itoa(i))),
			Rush:       i%4 == 0,
			IDCustomer: c.ID,
			Customer:   c,
		}
		if i%3 != 0 {
			o.Shipped = shipped(o.Placed.Add(48 * time.Hour))
		}
		orders = append(orders, o)
	}
	return orders
}

func newLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(os.Getenv("GRIDQUERY_LOG_LEVEL"))
	if err != nil || os.Getenv("GRIDQUERY_LOG_LEVEL") == "" {
		level = zerolog.WarnLevel
	}
	out := zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: !isatty.IsTerminal(os.Stderr.Fd()),
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func pageSize() int {
	if n, err := strconv.Atoi(os.Getenv("GRIDQUERY_PAGE_SIZE")); err == nil && n > 0 {
		return n
	}
	return 5
}

func main() {
	_ = godotenv.Load() // .env is optional

	customers := gridquery.NewSchema[*Customer]()
	gridquery.IntField(customers, "id", func(c *Customer) int { return c.ID })
	gridquery.StringField(customers, "name", func(c *Customer) string { return c.Name })
	gridquery.StringField(customers, "city", func(c *Customer) string { return c.City })

	orders := gridquery.NewSchema[*Order](gridquery.WithLogger(newLogger()))
	gridquery.IntField(orders, "id", func(o *Order) int { return o.ID })
	gridquery.StringField(orders, "number", func(o *Order) string { return o.Number })
	gridquery.IntField(orders, "priority", func(o *Order) int { return o.Priority })
	gridquery.TimeField(orders, "placed", func(o *Order) time.Time { return o.Placed })
	gridquery.NullableTimeField(orders, "shipped", func(o *Order) *time.Time { return o.Shipped })
	gridquery.DecimalField(orders, "total", func(o *Order) decimal.Decimal { return o.Total })
	gridquery.UUIDField(orders, "ref", func(o *Order) uuid.UUID { return o.Ref })
	gridquery.BoolField(orders, "rush", func(o *Order) bool { return o.Rush })
	gridquery.IntField(orders, "idCustomer", func(o *Order) int { return o.IDCustomer })
	gridquery.Nested(orders, "customer", customers, func(o *Order) (*Customer, bool) {
		return o.Customer, o.Customer != nil
	})

	data := sampleOrders()
	orders.SetLoader(func() ([]*Order, error) {
		return data, nil
	})

	root := &cobra.Command{
		Use:   "orderdemo",
		Short: "Order listing powered by gridquery",
	}
	cobraext.AddCommands(root, orders, cobraext.Config[*Order]{
		Defaults: gridquery.Defaults{
			SortField:     "placed",
			SortDirection: gridquery.Desc,
			PageSize:      pageSize(),
		},
		ID: func(o *Order) any { return o.ID },
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
