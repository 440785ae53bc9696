// Package dynamodb stores small blobs as DynamoDB items.
//
// Each blob is one item in a table with a string partition key "ns" and a
// string sort key "name"; the content lives in the binary attribute "data".
// DynamoDB caps items at 400 KB, so this backend fits sparse or short
// bitmaps; larger snapshots belong in S3.
//
//	aws dynamodb create-table \
//	  --table-name bitmaps \
//	  --attribute-definitions AttributeName=ns,AttributeType=S AttributeName=name,AttributeType=S \
//	  --key-schema AttributeName=ns,KeyType=HASH AttributeName=name,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
package dynamodb
