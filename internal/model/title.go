package model

// DefaultTitle is the rank of a freshly registered account
const DefaultTitle = "平民"

// titleLadder maps credit thresholds to rank labels, lowest first.
// TitleForCredit picks the highest rank whose threshold is not above the
// credit. Clients recompute titles after each game; the server only uses
// this ladder for new and seeded accounts.
var titleLadder = []struct {
	min   int
	title string
}{
	{0, "平民"},
	{300, "骑士"},
	{600, "男爵"},
	{1000, "小城主"},
	{2000, "大城主"},
	{5000, "领主"},
	{10000, "国王"},
}

// TitleForCredit returns the rank label for a credit value.
// Negative credit stays at the lowest rank.
func TitleForCredit(credit int) string {
	title := DefaultTitle
	for _, step := range titleLadder {
		if credit < step.min {
			break
		}
		title = step.title
	}
	return title
}
