package domain

const (
	SubjectCtxKey = "iiif-subject"
)
