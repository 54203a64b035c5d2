/*
Package ddb provides a DynamoDB implementation of the DataStore interface.

Each owner's bag is one item in a single table. The primary key is built
from templates in which {Owner} is replaced with the owner id:

	store := ddb.NewWithClient(client, "bags",
	    ddb.WithKeyTemplates("OWNER#{Owner}", "BAG"),
	)

The item carries EntityType "DataBag", the owner id and the entries in the
codec's attribute-value form. Loads reject items of any other entity type.
Delete is conditional on the item existing and reports NotFound otherwise.

NewDynamodbDataStore builds its own client. Static credentials are used when
an access key is configured, and Endpoint points the client at DynamoDB Local.
*/
package ddb
