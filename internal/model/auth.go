package model

type AccessToken struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
}
