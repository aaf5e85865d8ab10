package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/memoryxin/battlechess/internal/model"
	"github.com/memoryxin/battlechess/internal/server"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case model.User:
		o.printUser(v)
	case server.Status:
		o.printStatus(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printUser(u model.User) {
	fmt.Printf("User: %s\n", u.Name)
	fmt.Printf("Credit: %d\n", u.Credit)
	fmt.Printf("Title: %s\n", u.Title)
}

func (o *Output) printStatus(s server.Status) {
	fmt.Printf("Connections: %d\n", s.Connections)
	fmt.Printf("Waiting: %d\n", s.Waiting)
	fmt.Printf("Matches: %d\n", s.Matches)
}
