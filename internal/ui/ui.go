package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/chat.html
var templates embed.FS

type Page struct {
	Title       string
	Heading     string
	Intro       string
	Placeholder string
	Submit      string
	Loading     string
	Endpoint    string
}

var DefaultPage = Page{
	Title:       "AI Forsikring",
	Heading:     "AI Forsikring",
	Intro:       "Stil et spørgsmål om forsikring, sammenligning af policer, skadesanmeldelser eller dine rettigheder.",
	Placeholder: "Skriv dit spørgsmål her...",
	Submit:      "Send",
	Loading:     "AI Forsikring tænker...",
	Endpoint:    "/api/chat",
}

type ChatPage struct {
	tmpl *template.Template
	page Page
}

func NewChatPage(page Page) (*ChatPage, error) {
	tmpl, err := template.ParseFS(templates, "templates/chat.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse chat template: %w", err)
	}
	return &ChatPage{tmpl: tmpl, page: page}, nil
}

// ServeHTTP renders into a buffer before writing the status line.
func (c *ChatPage) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := c.tmpl.Execute(&buf, c.page); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
