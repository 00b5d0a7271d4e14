// Copyright 2026 ydg. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package chaterp-app-sheets provisions and maintains the Google Sheets spreadsheet that backs a
ChatERP account.

Each account has one 'ChatERP DATA' spreadsheet, created on first use and remembered in a local
email to spreadsheet mapping store. Every tab in the spreadsheet is a ChatERP project.

chaterp-app-sheets supports the following commands:

  - authorise, to authorise application access to the account's Google Sheets spreadsheets
  - get-spreadsheet, to retrieve (or create) the account spreadsheet
  - list-projects, to list the project tabs in the account spreadsheet
  - create-project, to add a project tab
  - rename-project, to rename a project tab
  - info, to display the spreadsheet URL and latest revision
*/
package sheets
