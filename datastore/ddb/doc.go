/*
Package ddb provides a DynamoDB implementation of datastore.Backend.

Every record becomes one item. The backend adds two attributes:

	PK          "<TypeName>.<id>"   // the table's string partition key
	EntityType  "<TypeName>"        // copy of the type tag, for ad-hoc queries

Load scans the table; Store puts every record in batches of up to 25 and
deletes items whose keys disappeared from the registry. Unprocessed items are
retried with a fixed backoff:

	client, err := ddb.NewClient(ctx, ddb.ClientConfig{Region: "us-east-1"})
	store := ddb.New(client, "objects",
	    ddb.WithMaxRetries(5),
	    ddb.WithRetryBackoff(200*time.Millisecond),
	)

Batch writes are not transactional, so a Store interrupted part way can leave
a mix of old and new items until the next successful Store.
*/
package ddb
