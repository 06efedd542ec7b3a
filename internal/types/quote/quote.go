package quote

type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}
