package app_test

import (
	"context"
	"errors"
	"testing"

	"salon_site/internal/app"
	"salon_site/internal/domain"
)

type fakeSheet struct {
	body  string
	err   error
	calls int
}

func (f *fakeSheet) FetchCSV(ctx context.Context) (string, error) {
	f.calls++
	return f.body, f.err
}

const header = "Kategori,Hizmet,Süre,Fiyat,Not,Sıra\n"

func services(items []domain.PriceItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Category+"/"+it.ServiceName)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCatalog_HeaderOnlyIsNoData(t *testing.T) {
	for _, body := range []string{"", "\n\n", header, header + "\n   \n"} {
		_, err := app.NewPriceService(&fakeSheet{body: body}).Catalog(context.Background())
		if !errors.Is(err, domain.ErrNoData) {
			t.Fatalf("body %q: expected ErrNoData, got %v", body, err)
		}
	}
}

func TestCatalog_HeaderIsNeverValidated(t *testing.T) {
	// the first record is dropped even if it looks like data
	cat, err := app.ParseCatalog("Saç,Kesim,30dk,500TL,,1\nSakal,Tıraş,15dk,200TL,,1\n")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if got := services(cat.Items); !equal(got, []string{"Sakal/Tıraş"}) {
		t.Fatalf("items = %v", got)
	}
}

func TestCatalog_DropsRowsWithoutCategoryOrService(t *testing.T) {
	cat, err := app.ParseCatalog(header +
		`"",ServiceX,30dk,100TL,,1` + "\n" +
		"Saç,,30dk,100TL,,1\n" +
		"tek-kolon\n" +
		"Saç,Kesim,30dk,500TL,,1\n")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if got := services(cat.Items); !equal(got, []string{"Saç/Kesim"}) {
		t.Fatalf("items = %v", got)
	}
	if len(cat.Categories) != 1 || len(cat.Categories["Saç"]) != 1 {
		t.Fatalf("categories = %+v", cat.Categories)
	}
}

func TestCatalog_AllRowsDroppedIsNotNoData(t *testing.T) {
	cat, err := app.ParseCatalog(header + ",x\n")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if cat.Items == nil || len(cat.Items) != 0 || cat.Categories == nil {
		t.Fatalf("expected empty, non-nil catalog: %#v", cat)
	}
}

func TestCatalog_MissingSortOrderSortsLast(t *testing.T) {
	cat, err := app.ParseCatalog(header +
		"Cat1,ServiceY,,,,\n" +
		"Cat1,ServiceZ,,,,2\n" +
		"Cat1,ServiceW,,,,abc\n" +
		"Cat1,ServiceV,,,,1\n")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	group := cat.Categories["Cat1"]
	if got := services(group); !equal(got, []string{"Cat1/ServiceV", "Cat1/ServiceZ", "Cat1/ServiceY", "Cat1/ServiceW"}) {
		t.Fatalf("group order = %v", got)
	}
	if group[2].SortOrder != domain.UnorderedSortOrder || group[3].SortOrder != domain.UnorderedSortOrder {
		t.Fatalf("expected sentinel sort order: %+v", group)
	}
	if !equal(services(cat.Items), services(group)) {
		t.Fatalf("flat list = %v", services(cat.Items))
	}
}

func TestCatalog_TurkishCollation(t *testing.T) {
	cat, err := app.ParseCatalog(header +
		"Çarşı,A,,,,1\n" +
		"Dalga,B,,,,1\n" +
		"Ayak,C,,,,1\n" +
		"İpek,D,,,,1\n" +
		"Jale,E,,,,1\n" +
		"Ilık,F,,,,1\n" +
		"Cilt,G,,,,1\n")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	// byte order would put Dalga before Çarşı and Jale before İpek
	want := []string{"Ayak/C", "Cilt/G", "Çarşı/A", "Dalga/B", "Ilık/F", "İpek/D", "Jale/E"}
	if got := services(cat.Items); !equal(got, want) {
		t.Fatalf("items = %v, want %v", got, want)
	}
}

func TestCatalog_QuotedFieldsAndSecondaryOrder(t *testing.T) {
	cat, err := app.ParseCatalog(header +
		`Saç,"Boya, dip",90dk,"1.500 TL","""kısa"" saç",2` + "\n" +
		"Saç,Kesim,30dk,500 TL,,1\n" +
		`"Bakım",Maske,20dk,300 TL,"çok
satırlı not",1` + "\n")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	want := []string{"Bakım/Maske", "Saç/Kesim", "Saç/Boya, dip"}
	if got := services(cat.Items); !equal(got, want) {
		t.Fatalf("items = %v, want %v", got, want)
	}
	boya := cat.Categories["Saç"][1]
	if boya.Price != "1.500 TL" || boya.Note != `"kısa" saç` || boya.Duration != "90dk" {
		t.Fatalf("unexpected item: %+v", boya)
	}
	if note := cat.Categories["Bakım"][0].Note; note != "çok\nsatırlı not" {
		t.Fatalf("multi-line note = %q", note)
	}
}

func TestCatalog_GroupsAreIndependentOfFlatList(t *testing.T) {
	cat, err := app.ParseCatalog(header + "B,x,,,,2\nA,y,,,,1\nB,z,,,,1\n")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if got := services(cat.Categories["B"]); !equal(got, []string{"B/z", "B/x"}) {
		t.Fatalf("group B = %v", got)
	}
	if got := services(cat.Items); !equal(got, []string{"A/y", "B/z", "B/x"}) {
		t.Fatalf("items = %v", got)
	}
	cat.Items[0].ServiceName = "mutated"
	if cat.Categories["A"][0].ServiceName != "y" {
		t.Fatalf("flat list aliases category groups")
	}
}

func TestCatalog_UpstreamErrorPropagates(t *testing.T) {
	src := &fakeSheet{err: &domain.UpstreamError{Service: "sheets", Status: 503}}
	_, err := app.NewPriceService(src).Catalog(context.Background())
	var ue *domain.UpstreamError
	if !errors.As(err, &ue) || ue.Status != 503 {
		t.Fatalf("expected upstream 503, got %v", err)
	}
	if src.calls != 1 {
		t.Fatalf("expected one fetch, got %d", src.calls)
	}
}

func TestCatalog_StrayQuoteCostsOnlyItsRow(t *testing.T) {
	body := header +
		"Saç,Kesim 5\" uzun,30dk,100,,1\n" +
		"Saç,Fön,20dk,80,,2\n" +
		"Sakal,Tıraş,15dk,50,,1\n"
	cat, err := app.ParseCatalog(body)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	// the damaged row keeps its own line; its quote swallows only its own commas
	want := []string{"Saç/Fön", "Saç/Kesim 5 uzun,30dk,100,,1", "Sakal/Tıraş"}
	if got := services(cat.Items); !equal(got, want) {
		t.Fatalf("items = %q, want %q", got, want)
	}
}
