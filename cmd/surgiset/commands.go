package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/matejv/surgiset/internal/audit"
	"github.com/matejv/surgiset/internal/catalog"
	"github.com/matejv/surgiset/internal/imaging"
	"github.com/matejv/surgiset/internal/model"
	"github.com/matejv/surgiset/internal/prefs"
	"github.com/matejv/surgiset/internal/store"
)

func cmdAdd(args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	name := fs.String("name", "", "instrument name")
	desc := fs.String("desc", "", "instrument description")
	qty := fs.Int("qty", 1, "number of units to add (one row per unit)")
	image := fs.String("image", "", "path to a photo to attach")
	wishlist := fs.Bool("wishlist", false, "mark as a wishlist entry")
	fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("-name is required")
	}

	draft := store.InstrumentDraft{
		Name:        *name,
		Description: *desc,
		Quantity:    *qty,
		IsWishlist:  *wishlist,
	}

	if *image != "" {
		photo, err := imaging.ProcessFile(*image)
		if err != nil {
			return fmt.Errorf("processing photo: %w", err)
		}
		draft.Image = photo.DataURI()
	}

	ctx := context.Background()
	s, _, cleanup, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	s.AddInstrument(draft)

	count := draft.Quantity
	if count < 1 {
		count = 1
	}
	fmt.Printf("Added %d %s row(s)\n", count, draft.Name)
	return nil
}

func cmdList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	unallocated := fs.Bool("unallocated", false, "only rows not allocated to any set")
	fs.Parse(args)

	s, _, cleanup, err := openStore(context.Background())
	if err != nil {
		return err
	}
	defer cleanup()

	rows := s.Inventory()
	if *unallocated {
		rows = s.UnallocatedInstruments()
	}

	if len(rows) == 0 {
		fmt.Println("Inventory is empty.")
		return nil
	}

	for _, inst := range rows {
		marker := ""
		if inst.IsWishlist {
			marker = " [wishlist]"
		}
		allocated := s.TotalAllocated(inst.ID)
		fmt.Printf("%s  %-40s shelf:%d allocated:%d%s\n",
			shortID(inst.ID), inst.Name, inst.Quantity, allocated, marker)
	}
	return nil
}

func cmdSets(args []string) error {
	fs := flag.NewFlagSet("sets", flag.ExitOnError)
	fs.Parse(args)

	s, _, cleanup, err := openStore(context.Background())
	if err != nil {
		return err
	}
	defer cleanup()

	state := s.Snapshot()
	if len(state.Sets) == 0 {
		fmt.Println("No sets.")
		return nil
	}

	for _, set := range state.Sets {
		fmt.Printf("%s  %s (%s)\n", shortID(set.ID), set.Name, set.Icon)
		if set.Description != "" {
			fmt.Printf("          %s\n", set.Description)
		}
		for _, alloc := range set.Instruments {
			name := audit.UnknownInstrumentName
			if inst := state.Instrument(alloc.InstrumentID); inst != nil {
				name = inst.Name
			}
			fmt.Printf("          %dx %s\n", alloc.Quantity, name)
		}
	}
	return nil
}

func cmdCreateSet(args []string) error {
	fs := flag.NewFlagSet("create-set", flag.ExitOnError)
	name := fs.String("name", "", "set name")
	desc := fs.String("desc", "", "set description")
	icon := fs.String("icon", "", "set icon (default: "+model.DefaultIcon+")")
	fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("-name is required")
	}
	if *icon != "" && !model.ValidIcon(*icon) {
		return fmt.Errorf("unknown icon %q (choose from: %s)", *icon, strings.Join(model.SetIcons, ", "))
	}

	s, _, cleanup, err := openStore(context.Background())
	if err != nil {
		return err
	}
	defer cleanup()

	s.CreateSet(*name, *desc, *icon)
	fmt.Printf("Created set %s\n", *name)
	return nil
}

func cmdAllocate(args []string) error {
	fs := flag.NewFlagSet("allocate", flag.ExitOnError)
	setID := fs.String("set", "", "target set id")
	instrumentID := fs.String("instrument", "", "instrument id")
	qty := fs.Int("qty", 1, "units to move")
	fs.Parse(args)

	if *setID == "" || *instrumentID == "" {
		return fmt.Errorf("-set and -instrument are required")
	}

	s, _, cleanup, err := openStore(context.Background())
	if err != nil {
		return err
	}
	defer cleanup()

	before, _ := s.Instrument(*instrumentID)
	s.AddInstrumentToSet(*setID, *instrumentID, *qty)
	after, ok := s.Instrument(*instrumentID)

	if !ok || before.Quantity == after.Quantity {
		fmt.Println("Nothing moved: check the ids and the available shelf quantity.")
		return nil
	}
	fmt.Printf("Moved %d unit(s) of %s into the set\n", *qty, after.Name)
	return nil
}

func cmdReturn(args []string) error {
	fs := flag.NewFlagSet("return", flag.ExitOnError)
	setID := fs.String("set", "", "source set id")
	instrumentID := fs.String("instrument", "", "instrument id")
	qty := fs.Int("qty", 1, "units to return")
	all := fs.Bool("all", false, "return every allocation in the set")
	fs.Parse(args)

	if *setID == "" {
		return fmt.Errorf("-set is required")
	}
	if !*all && *instrumentID == "" {
		return fmt.Errorf("-instrument is required unless -all is given")
	}

	s, _, cleanup, err := openStore(context.Background())
	if err != nil {
		return err
	}
	defer cleanup()

	if *all {
		s.ReturnAllToInventory(*setID)
		fmt.Println("Returned all allocations to inventory")
		return nil
	}

	s.RemoveInstrumentFromSet(*setID, *instrumentID, *qty)
	fmt.Printf("Returned up to %d unit(s) to inventory\n", *qty)
	return nil
}

func cmdDeleteSet(args []string) error {
	fs := flag.NewFlagSet("delete-set", flag.ExitOnError)
	id := fs.String("id", "", "set id")
	fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	s, _, cleanup, err := openStore(context.Background())
	if err != nil {
		return err
	}
	defer cleanup()

	s.DeleteSet(*id)
	fmt.Println("Set deleted; its allocations were returned to inventory")
	return nil
}

func cmdRemove(args []string) error {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	id := fs.String("id", "", "instrument id")
	fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	s, _, cleanup, err := openStore(context.Background())
	if err != nil {
		return err
	}
	defer cleanup()

	s.RemoveInstrument(*id)
	fmt.Println("Instrument removed from inventory and all sets")
	return nil
}

func cmdWishlist(args []string) error {
	fs := flag.NewFlagSet("wishlist", flag.ExitOnError)
	id := fs.String("id", "", "instrument id")
	fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	s, _, cleanup, err := openStore(context.Background())
	if err != nil {
		return err
	}
	defer cleanup()

	s.ToggleWishlist(*id)
	if inst, ok := s.Instrument(*id); ok {
		if inst.IsWishlist {
			fmt.Printf("%s is now on the wishlist\n", inst.Name)
		} else {
			fmt.Printf("%s is no longer on the wishlist\n", inst.Name)
		}
		return nil
	}
	fmt.Println("No such instrument.")
	return nil
}

func cmdAudit(args []string) error {
	fs := flag.NewFlagSet("audit", flag.ExitOnError)
	format := fs.String("format", "html", "output format: html or xlsx")
	out := fs.String("out", "", "output path (default: generated filename)")
	fs.Parse(args)

	if *format != "html" && *format != "xlsx" {
		return fmt.Errorf("unknown format %q", *format)
	}

	s, _, cleanup, err := openStore(context.Background())
	if err != nil {
		return err
	}
	defer cleanup()

	state := s.Snapshot()
	report := audit.BuildReport(state.Inventory, state.Sets, time.Now())

	path := *out
	if path == "" {
		path = report.Filename + "." + *format
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	switch *format {
	case "html":
		err = audit.RenderHTML(f, report)
	case "xlsx":
		err = audit.WriteXLSX(f, report)
	}
	if err != nil {
		os.Remove(path)
		return err
	}

	fmt.Printf("Audit written to %s (%d section(s))\n", path, len(report.Sections))
	return nil
}

func cmdSearch(args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	limit := fs.Int("limit", 50, "maximum results")
	recent := fs.Bool("recent", false, "show recent search terms and exit")
	fs.Parse(args)

	backend, err := openBackend()
	if err != nil {
		return err
	}
	defer backend.Close()

	ctx := context.Background()
	searches, err := prefs.OpenRecentSearches(ctx, backend)
	if err != nil {
		return err
	}

	if *recent {
		terms := searches.List()
		if len(terms) == 0 {
			fmt.Println("No recent searches.")
			return nil
		}
		for _, term := range terms {
			fmt.Println(term)
		}
		return nil
	}

	query := strings.Join(fs.Args(), " ")
	results := catalog.Search(query, *limit)
	searches.Add(ctx, query)

	if len(results) == 0 {
		fmt.Println("No catalog matches.")
		return nil
	}
	for _, item := range results {
		line := fmt.Sprintf("%-45s %s", item.Name, item.Description)
		if item.Source != nil {
			line += fmt.Sprintf(" (%s p.%d)", item.Source.Catalogue, item.Source.Page)
		}
		fmt.Println(line)
	}
	return nil
}

func cmdTheme(args []string) error {
	fs := flag.NewFlagSet("theme", flag.ExitOnError)
	show := fs.Bool("show", false, "print the current mode without toggling")
	fs.Parse(args)

	backend, err := openBackend()
	if err != nil {
		return err
	}
	defer backend.Close()

	ctx := context.Background()
	theme, err := prefs.OpenTheme(ctx, backend)
	if err != nil {
		return err
	}

	if !*show {
		theme.Toggle(ctx)
	}

	if theme.DarkMode() {
		fmt.Println("Dark mode enabled")
	} else {
		fmt.Println("Light mode enabled")
	}
	return nil
}

// shortID trims a UUID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
