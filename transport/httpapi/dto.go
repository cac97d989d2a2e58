package httpapi

import (
	"fmt"

	"github.com/vortex-fintech/go-iban/iban"
)

type validateRequest struct {
	IBAN string `json:"iban" validate:"required,max=64"`
}

type validateResponse struct {
	CountryCode       string `json:"country_code"`
	CheckDigits       string `json:"check_digits"`
	AccountIdentifier string `json:"account_identifier"`
	MachineForm       string `json:"machine_form"`
	HumanReadable     string `json:"human_readable"`
	Valid             bool   `json:"valid"`
	Reason            string `json:"reason,omitempty"`
}

func newValidateResponse(v iban.IBAN, reason iban.Reason) validateResponse {
	return validateResponse{
		CountryCode:       v.CountryCode(),
		CheckDigits:       fmt.Sprintf("%02d", v.CheckDigits()),
		AccountIdentifier: v.AccountIdentifier(),
		MachineForm:       v.MachineForm(),
		HumanReadable:     v.HumanReadable(),
		Valid:             reason == "",
		Reason:            string(reason),
	}
}

type countryResponse struct {
	Code   string `json:"code"`
	Length int    `json:"length"`
}

type countriesResponse struct {
	Countries []countryResponse `json:"countries"`
}

func listCountries() countriesResponse {
	codes := iban.Countries()
	out := countriesResponse{Countries: make([]countryResponse, 0, len(codes))}
	for _, code := range codes {
		n, _ := iban.CountryLength(code)
		out.Countries = append(out.Countries, countryResponse{Code: code, Length: n})
	}
	return out
}
