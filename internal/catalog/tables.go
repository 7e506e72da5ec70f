// SPDX-License-Identifier: MIT
package catalog

var tvChannels = []Channel{
	{ID: "bbc_one_hd", Name: "BBC One"},
	{ID: "bbc_two_hd", Name: "BBC Two"},
	{ID: "bbc_two_hd", Name: "BBC Two England"},
	{ID: "bbc_three_hd", Name: "BBC Three"},
	{ID: "bbc_four_hd", Name: "BBC Four"},
	{ID: "cbbc_hd", Name: "CBBC"},
	{ID: "cbeebies_hd", Name: "CBeebies"},
	{ID: "bbc_news24", Name: "BBC News"},
	{ID: "bbc_parliament", Name: "BBC Parliament"},
	{ID: "bbc_alba", Name: "BBC Alba"},
	{ID: "s4cpbs", Name: "S4C"},
	{ID: "bbc_scotland_hd", Name: "BBC Scotland"},
	{ID: "bbc_one_scotland_hd", Name: "BBC One Scotland"},
	{ID: "bbc_one_wales_hd", Name: "BBC One Wales"},
	{ID: "bbc_one_northern_ireland_hd", Name: "BBC One Northern Ireland"},
	{ID: "bbc_two_wales_digital", Name: "BBC Two Wales"},
	{ID: "bbc_two_northern_ireland_digital", Name: "BBC Two Northern Ireland"},
	{ID: "bbc_one_cambridge", Name: "BBC One Cambridge"},
	{ID: "bbc_one_channel_islands", Name: "BBC One Channel Islands"},
	{ID: "bbc_one_east", Name: "BBC One East"},
	{ID: "bbc_one_east_midlands", Name: "BBC One East Midlands"},
	{ID: "bbc_one_east_yorkshire", Name: "BBC One Yorks & Lincs"},
	{ID: "bbc_one_north_east", Name: "BBC One North East"},
	{ID: "bbc_one_north_west", Name: "BBC One North West"},
	{ID: "bbc_one_oxford", Name: "BBC One Oxford"},
	{ID: "bbc_one_south", Name: "BBC One South"},
	{ID: "bbc_one_south_east", Name: "BBC One South East"},
	{ID: "bbc_one_south_west", Name: "BBC One South West"},
	{ID: "bbc_one_west", Name: "BBC One West"},
	{ID: "bbc_one_west_midlands", Name: "BBC One West Midlands"},
	{ID: "bbc_one_yorks", Name: "BBC One Yorkshire"},
}

var radioChannels = []Channel{
	{ID: "bbc_radio_one", Name: "Radio 1"},
	{ID: "bbc_radio_one_dance", Name: "Radio 1 Dance"},
	{ID: "bbc_radio_one_relax", Name: "Radio 1 Relax"},
	{ID: "bbc_1xtra", Name: "1Xtra"},
	{ID: "bbc_radio_two", Name: "Radio 2"},
	{ID: "bbc_radio_three", Name: "Radio 3"},
	{ID: "bbc_radio_fourfm", Name: "Radio 4 FM"},
	{ID: "bbc_radio_fourlw", Name: "Radio 4 LW"},
	{ID: "bbc_radio_four_extra", Name: "Radio 4 Extra"},
	{ID: "bbc_radio_five_live", Name: "Radio 5 Live"},
	{ID: "bbc_radio_five_live_sports_extra", Name: "Radio 5 Live Sports Extra"},
	{ID: "bbc_6music", Name: "6 Music"},
	{ID: "bbc_asian_network", Name: "Asian Network"},
	{ID: "bbc_world_service", Name: "World Service"},
	{ID: "bbc_radio_scotland_fm", Name: "Radio Scotland"},
	{ID: "bbc_radio_nan_gaidheal", Name: "Radio nan Gàidheal"},
	{ID: "bbc_radio_ulster", Name: "Radio Ulster"},
	{ID: "bbc_radio_foyle", Name: "Radio Foyle"},
	{ID: "bbc_radio_wales_fm", Name: "Radio Wales"},
	{ID: "bbc_radio_cymru", Name: "Radio Cymru"},
	{ID: "bbc_london", Name: "BBC Radio London"},
	{ID: "bbc_radio_manchester", Name: "BBC Radio Manchester"},
	{ID: "bbc_radio_bristol", Name: "BBC Radio Bristol"},
	{ID: "bbc_radio_leeds", Name: "BBC Radio Leeds"},
	{ID: "bbc_radio_merseyside", Name: "BBC Radio Merseyside"},
	{ID: "bbc_radio_newcastle", Name: "BBC Newcastle"},
	{ID: "bbc_radio_solent", Name: "BBC Radio Solent"},
	{ID: "bbc_radio_kent", Name: "BBC Radio Kent"},
}

func init() {
	for i := range radioChannels {
		radioChannels[i].Kind = KindRadio
	}
}

// TV returns a copy of the television catalog in display order.
func TV() []Channel {
	return append([]Channel(nil), tvChannels...)
}

// Radio returns a copy of the radio catalog in display order.
func Radio() []Channel {
	return append([]Channel(nil), radioChannels...)
}
