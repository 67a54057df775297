package importer

import (
	"strings"
	"testing"
)

const cardHTML = `
<html>
<head><title>Kelwood Park | Scorecard</title></head>
<body>
<h1>Kelwood Park Golf Club</h1>
<table>
  <tr><th>Tee</th><td>White</td><td>Yellow</td></tr>
  <tr><th>Yards</th><td>6200</td><td>5900</td></tr>
</table>
<table>
  <tr><th>Hole</th><th>1</th><th>2</th><th>3</th><th>4</th><th>5</th><th>6</th><th>7</th><th>8</th><th>9</th><th>Out</th>
      <th>10</th><th>11</th><th>12</th><th>13</th><th>14</th><th>15</th><th>16</th><th>17</th><th>18</th><th>In</th><th>Total</th></tr>
  <tr><th>Par</th><td>4</td><td>3</td><td>5</td><td>4</td><td>4</td><td>3</td><td>4</td><td>5</td><td>4</td><td>36</td>
      <td>4</td><td>4</td><td>3</td><td>5</td><td>4</td><td>4</td><td>3</td><td>5</td><td>4</td><td>36</td><td>72</td></tr>
  <tr><th>S.I.</th><td>5</td><td>17</td><td>7</td><td>1</td><td>11</td><td>15</td><td>3</td><td>13</td><td>9</td><td></td>
      <td>2</td><td>8</td><td>18</td><td>10</td><td>4</td><td>12</td><td>16</td><td>6</td><td>14</td><td></td><td></td></tr>
</table>
</body>
</html>`

func TestParse(t *testing.T) {
	card, err := Parse(strings.NewReader(cardHTML))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if card.CourseName != "Kelwood Park Golf Club" {
		t.Errorf("Expected course name from the h1, got %q", card.CourseName)
	}
	if len(card.Pars) != 18 {
		t.Fatalf("Expected 18 holes, got %d", len(card.Pars))
	}
	if card.TotalPar != 72 {
		t.Errorf("Expected total par 72, got %d", card.TotalPar)
	}

	// The Out/In/Total columns must not leak into the card.
	if card.Pars[0] != 4 || card.Pars[8] != 4 || card.Pars[9] != 4 || card.Pars[17] != 4 {
		t.Errorf("Pars misaligned around the Out column: %v", card.Pars)
	}
	if card.Pars[2] != 5 || card.Pars[12] != 5 {
		t.Errorf("Expected par 5s on holes 3 and 13, got %v", card.Pars)
	}
	if card.StrokeIndex[3] != 1 || card.StrokeIndex[12] != 10 {
		t.Errorf("Stroke indexes misaligned: %v", card.StrokeIndex)
	}

	cfg := card.HoleConfig()
	if len(cfg) != 18 || cfg[0].Number != 1 || cfg[17].Number != 18 {
		t.Errorf("HoleConfig misnumbered: %+v", cfg)
	}
	if cfg.TotalPar() != 72 {
		t.Errorf("Expected config total par 72, got %d", cfg.TotalPar())
	}
}

func TestParse_NineHoleCard(t *testing.T) {
	html := `
<table>
  <tr><th>Hole</th><th>1</th><th>2</th><th>3</th><th>4</th><th>5</th><th>6</th><th>7</th><th>8</th><th>9</th></tr>
  <tr><th>Par</th><td>4</td><td>3</td><td>4</td><td>5</td><td>4</td><td>3</td><td>4</td><td>4</td><td>5</td></tr>
  <tr><th>Stroke Index</th><td>3</td><td>9</td><td>5</td><td>1</td><td>7</td><td>8</td><td>4</td><td>6</td><td>2</td></tr>
</table>`

	card, err := Parse(strings.NewReader(html))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(card.Pars) != 9 {
		t.Fatalf("Expected 9 holes, got %d", len(card.Pars))
	}
	if card.TotalPar != 36 {
		t.Errorf("Expected total par 36, got %d", card.TotalPar)
	}
}

func TestParse_NoCard(t *testing.T) {
	html := `<html><body><p>Green fees from £30</p><table><tr><td>Weekday</td><td>£30</td></tr></table></body></html>`
	if _, err := Parse(strings.NewReader(html)); err == nil {
		t.Error("Expected an error for a page without a scorecard")
	}
}

func TestParse_RejectsBrokenStrokeIndex(t *testing.T) {
	// Duplicate stroke indexes disqualify the table.
	html := `
<table>
  <tr><th>Hole</th><th>1</th><th>2</th><th>3</th><th>4</th><th>5</th><th>6</th><th>7</th><th>8</th><th>9</th>
      <th>10</th><th>11</th><th>12</th><th>13</th><th>14</th><th>15</th><th>16</th><th>17</th><th>18</th></tr>
  <tr><th>Par</th><td>4</td><td>4</td><td>4</td><td>4</td><td>4</td><td>4</td><td>4</td><td>4</td><td>4</td>
      <td>4</td><td>4</td><td>4</td><td>4</td><td>4</td><td>4</td><td>4</td><td>4</td><td>4</td></tr>
  <tr><th>S.I.</th><td>1</td><td>1</td><td>3</td><td>4</td><td>5</td><td>6</td><td>7</td><td>8</td><td>9</td>
      <td>10</td><td>11</td><td>12</td><td>13</td><td>14</td><td>15</td><td>16</td><td>17</td><td>18</td></tr>
</table>`
	if _, err := Parse(strings.NewReader(html)); err == nil {
		t.Error("Expected an error for a duplicated stroke index")
	}
}
