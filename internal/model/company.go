package model

type Company struct {
	Name    string
	Address string
	Phone   string
	Email   string
	Website string
}
