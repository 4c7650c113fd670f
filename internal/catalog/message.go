package catalog

// Message is one catalog entry: a code and the three variants served for it.
type Message struct {
	Code               string `json:"code" yaml:"code" validate:"required"`
	TechnicalDetail    string `json:"technicalDetail" yaml:"technical"`
	UserMessage        string `json:"userMessage" yaml:"user"`
	GeneralDescription string `json:"generalDescription" yaml:"general"`
}
