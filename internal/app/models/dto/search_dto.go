package dto

// GlobalSearchResponse bundles matching posts and users. Both collections may
// be empty; the client renders "no results" itself.
type GlobalSearchResponse struct {
	Posts []PostResponse `json:"posts"`
	Users []UserSummary  `json:"users"`
}
