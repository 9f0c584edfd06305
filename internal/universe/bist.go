package universe

// bistStocks is the fixed BIST universe served by the API.
var bistStocks = map[string]string{
	"ACSEL.IS": "Acıselsan Acıpayam Selüloz Sanayi ve Ticaret A.Ş.",
	"ADEL.IS":  "Adel Kalemcilik Ticaret ve Sanayi A.Ş.",
	"ADESE.IS": "Adese Alışveriş Merkezleri Ticaret A.Ş.",
	"AEFES.IS": "Anadolu Efes Biracılık ve Malt Sanayii A.Ş.",
	"AFYON.IS": "Afyon Çimento Sanayi T.A.Ş.",
	"AGESA.IS": "AgeSA Hayat ve Emeklilik A.Ş.",
	"AGHOL.IS": "AG Anadolu Grubu Holding A.Ş.",
	"AGYO.IS":  "Atakule Gayrimenkul Yatırım Ortaklığı A.Ş.",
	"AKBNK.IS": "Akbank T.A.Ş.",
	"AKCNS.IS": "Akçansa Çimento Sanayi ve Ticaret A.Ş.",
	"AKENR.IS": "Akenerji Elektrik Üretim A.Ş.",
	"AKFGY.IS": "Akfen Gayrimenkul Yatırım Ortaklığı A.Ş.",
	"AKGRT.IS": "Aksigorta A.Ş.",
	"AKSA.IS":  "Aksa Akrilik Kimya Sanayii A.Ş.",
	"AKSEN.IS": "Aksa Enerji Üretim A.Ş.",
	"ALARK.IS": "Alarko Holding A.Ş.",
	"ALBRK.IS": "Albaraka Türk Katılım Bankası A.Ş.",
	"ANACM.IS": "Anadolu Cam Sanayii A.Ş.",
	"ARCLK.IS": "Arçelik A.Ş.",
	"ASELS.IS": "Aselsan Elektronik Sanayi ve Ticaret A.Ş.",
	"BIMAS.IS": "BİM Birleşik Mağazalar A.Ş.",
	"DOHOL.IS": "Doğan Şirketler Grubu Holding A.Ş.",
	"EKGYO.IS": "Emlak Konut Gayrimenkul Yatırım Ortaklığı A.Ş.",
	"ENKAI.IS": "ENKA İnşaat ve Sanayi A.Ş.",
	"EREGL.IS": "Ereğli Demir ve Çelik Fabrikaları T.A.Ş.",
	"FROTO.IS": "Ford Otomotiv Sanayi A.Ş.",
	"GARAN.IS": "Türkiye Garanti Bankası A.Ş.",
	"GUBRF.IS": "Gübre Fabrikaları T.A.Ş.",
	"HALKB.IS": "Türkiye Halk Bankası A.Ş.",
	"ISCTR.IS": "Türkiye İş Bankası A.Ş.",
	"KCHOL.IS": "Koç Holding A.Ş.",
	"KOZAA.IS": "Koza Anadolu Metal Madencilik İşletmeleri A.Ş.",
	"KOZAL.IS": "Koza Altın İşletmeleri A.Ş.",
	"KRDMD.IS": "Kardemir Karabük Demir Çelik Sanayi ve Ticaret A.Ş.",
	"PETKM.IS": "Petkim Petrokimya Holding A.Ş.",
	"PGSUS.IS": "Pegasus Hava Taşımacılığı A.Ş.",
	"SAHOL.IS": "Hacı Ömer Sabancı Holding A.Ş.",
	"SISE.IS":  "Türkiye Şişe ve Cam Fabrikaları A.Ş.",
	"TAVHL.IS": "TAV Havalimanları Holding A.Ş.",
	"TCELL.IS": "Turkcell İletişim Hizmetleri A.Ş.",
	"THYAO.IS": "Türk Hava Yolları A.O.",
	"TKFEN.IS": "Tekfen Holding A.Ş.",
	"TOASO.IS": "Tofaş Türk Otomobil Fabrikası A.Ş.",
	"TTKOM.IS": "Türk Telekomünikasyon A.Ş.",
	"TUPRS.IS": "Türkiye Petrol Rafinerileri A.Ş.",
	"VAKBN.IS": "Türkiye Vakıflar Bankası T.A.O.",
	"VESTL.IS": "Vestel Elektronik Sanayi ve Ticaret A.Ş.",
	"YKBNK.IS": "Yapı ve Kredi Bankası A.Ş.",
}
