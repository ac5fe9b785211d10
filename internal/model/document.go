package model

// AgreementDocument is the data needed to render a rental agreement form.
type AgreementDocument struct {
	Agreement Agreement
	Customer  Customer
	Container *Container
}
