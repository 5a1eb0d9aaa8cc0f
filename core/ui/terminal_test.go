package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestTableAlignsMultibyteCells(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	table := w.NewTable("Faixa", "Tarifa")
	table.AddRow("0-100 kWh", "0.50")
	table.AddRow("500-∞ kWh", "1.35")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[3], "500-∞ kWh │ 1.35") {
		t.Errorf("unexpected row: %q", lines[3])
	}
	if !strings.HasPrefix(lines[2], "0-100 kWh │ 0.50") {
		t.Errorf("unexpected row: %q", lines[2])
	}
}

func TestStatusLinesWithoutColor(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	w.Error("Valor inválido")
	w.Success("ok")
	w.Info("hidden")

	out := buf.String()
	if !strings.Contains(out, "✗ Valor inválido") || !strings.Contains(out, "✓ ok") {
		t.Errorf("unexpected output: %q", out)
	}
	if strings.Contains(out, "hidden") || strings.Contains(out, "\033[") {
		t.Errorf("info/no-color not honoured: %q", out)
	}
}

func TestInfoNeedsVerbose(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	w.SetVerbosity(2)
	w.Info("tarifa %s", "residencial")
	if got := strings.TrimSpace(buf.String()); got != "ℹ tarifa residencial" {
		t.Errorf("got %q", got)
	}
}

func TestStatusLineKeepsPercentSigns(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	w.Warning("adicional de %s", "10%")
	if got := strings.TrimSpace(buf.String()); got != "⚠ adicional de 10%" {
		t.Errorf("got %q", got)
	}
}
