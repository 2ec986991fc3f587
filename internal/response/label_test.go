package response

import (
	"testing"

	"github.com/hove-io/munin/internal/place"
	"github.com/stretchr/testify/assert"
)

func nlAdmins() []*place.Place {
	return []*place.Place{
		{Name: "Amsterdam", Admin: &place.AdminAttrs{IsCity: true, Names: place.LocaleStrings{
			"ja": "アムステルダム", "ru": "Амстердам",
		}}},
		{Name: "Noord-Holland", Admin: &place.AdminAttrs{IsCity: false}},
		{Name: "Nederland", Admin: &place.AdminAttrs{IsCity: false}},
	}
}

func frAdmins() []*place.Place {
	return []*place.Place{
		{Name: "Paris", Admin: &place.AdminAttrs{IsCity: true}},
		{Name: "Île-de-France", Admin: &place.AdminAttrs{IsCity: false}},
		{Name: "France", Admin: &place.AdminAttrs{IsCity: false}},
	}
}

func TestNlAddr(t *testing.T) {
	name, label := FormatAddrNameAndLabel("573", "Herengracht", nlAdmins(), []string{"nl"})
	assert.Equal(t, "Herengracht 573", name)
	assert.Equal(t, "Herengracht 573 (Amsterdam)", label)
}

func TestNlStreet(t *testing.T) {
	assert.Equal(t, "Herengracht (Amsterdam)", FormatStreetLabel("Herengracht", nlAdmins()))
}

func TestNlPoi(t *testing.T) {
	assert.Equal(t, "Delirium Cafe (Amsterdam)", FormatPoiLabel("Delirium Cafe", nlAdmins()))
}

func TestFrAddr(t *testing.T) {
	name, label := FormatAddrNameAndLabel("20", "rue hector malot", frAdmins(), []string{"fr"})
	assert.Equal(t, "20 rue hector malot", name)
	assert.Equal(t, "20 rue hector malot (Paris)", label)
}

func TestFrStreet(t *testing.T) {
	assert.Equal(t, "rue hector malot (Paris)", FormatStreetLabel("rue hector malot", frAdmins()))
}

func TestNlPoiInRussian(t *testing.T) {
	poiNames := place.LocaleStrings{"ru": "Дом-музей Рембрандта"}
	got := FormatInternationalPoiLabel(poiNames, "Rembrandthuis", "Rembrandthuis (Amsterdam)", nlAdmins(), []string{"ru"})
	assert.Equal(t, place.LocaleStrings{"ru": "Дом-музей Рембрандта (Амстердам)"}, got)
}

func TestNlPoiInFrenchSkipsUntranslated(t *testing.T) {
	poiNames := place.LocaleStrings{"ru": "Дом-музей Рембрандта"}
	got := FormatInternationalPoiLabel(poiNames, "Rembrandthuis", "Rembrandthuis (Amsterdam)", nlAdmins(), []string{"fr"})
	assert.Empty(t, got)
}

func TestNlPoiInJapaneseUsesTranslatedCityName(t *testing.T) {
	poiNames := place.LocaleStrings{"ru": "Дом-музей Рембрандта"}
	got := FormatInternationalPoiLabel(poiNames, "Rembrandthuis", "Rembrandthuis (Amsterdam)", nlAdmins(), []string{"ja"})
	assert.Equal(t, place.LocaleStrings{"ja": "Rembrandthuis (アムステルダム)"}, got)
}
