package scan

// ResumeFile is an uploaded resume held in memory until submission. Content
// validation is the backend's job; only the declared name and type matter
// here.
type ResumeFile struct {
	Name string
	MIME string
	Data []byte
}

// ScanRequest carries one scan's inputs. A fresh request is built per user
// action.
type ScanRequest struct {
	JDText string
	Resume ResumeFile
}

// Advice pairs a detected resume issue with the backend's suggested fix.
type Advice struct {
	Issue  string `json:"issue"`
	Advice string `json:"advice"`
}

// ScanResponse is the backend's analysis. Every field is independently
// optional: absent or wrong-shaped fields decode to their empty form
// instead of failing the scan.
type ScanResponse struct {
	JDText            string
	ATSScore          *float64 // 0-100, nil when absent or not a number
	SuggestedSkills   []string
	ImprovementAdvice []Advice
}
