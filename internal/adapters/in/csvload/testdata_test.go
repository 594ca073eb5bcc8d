package csvload_test

const distanceTable = `DISTANCE BETWEEN HUBS IN MILES,"Western Governors University
4001 South 700 East (84107)","1060 Dalton Ave S (84104)",1330 2100 S
"Western Governors University
4001 South 700 East (84107)",0.0,,
1060 Dalton Ave S,7.2,0.0,
1330 2100 S,3.8,7.1,0.0
`

const packageFile = `WGUPS Package File,,,,,,,
Package ID,Address,City,State,Zip,Delivery Deadline,Weight KILO,Special Notes
,,,,,,,
1,1060 Dalton Ave S,Salt Lake City,UT,84104,10:30 AM,21,
2,1330 2100 S,Salt Lake City,UT,84106,EOD,44,"Must be delivered with 3, 4"
3,"1330  2100 S (84106)",Salt Lake City,UT,84106,9:00 AM,2,Can only be on truck 2
`
