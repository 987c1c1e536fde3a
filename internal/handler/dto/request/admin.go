package request

type ResolveDisputeRequest struct {
	Resolution string `json:"resolution" binding:"required,oneof=buyer mechanic"`
	Note       string `json:"note" binding:"max=2000"`
}
