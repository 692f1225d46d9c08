// Package vecdesk is the store access layer of the vecdesk client: it turns
// collection, object and search intents into GraphQL documents and REST
// calls against a Weaviate-compatible vector store, and shapes the answers
// into stable Go types.
//
// Every operation reloads the connection settings first and fails with
// ErrNotConfigured before any network call when no store url is set.
//
//	store, _ := vecdesk.FileSettings("", "", nil)
//	client, _ := vecdesk.New(vecdesk.WithSettings(store))
//	_ = client.SaveSettings(ctx, vecdesk.Settings{URL: "localhost:8080"})
//
//	cols, _ := client.ListCollections(ctx)
//	rows, _ := client.GetPage(ctx, "Article", []string{"title"},
//	    &vecdesk.Sort{Property: "publishedAt", Order: "desc"}, 50, 0)
//	hits, _ := client.Search(ctx, vecdesk.SearchRequest{
//	    Query:      "solar subsidies",
//	    Collection: "Article",
//	    Type:       vecdesk.SearchHybrid,
//	})
package vecdesk
