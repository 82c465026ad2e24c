package mcpserver

// FormatContract describes the canonical cheatsheet document format that
// LLM consumers should follow when creating or updating cheatsheets.
const FormatContract = `# CheatSheeter Document Format

Every cheatsheet stored in CheatSheeter MUST follow this structure.

## Structure

` + "```" + `yaml
title: Human-readable title    # REQUIRED – page heading of the sheet
columns: 2                     # OPTIONAL – layout columns, >= 1, default 1
categories:                    # Ordered; rendered in document order
  - name: Category heading     # REQUIRED per category
    column: 1                  # OPTIONAL – pins the category to a column
    items:                     # Ordered command/description pairs
      - command: git status    # REQUIRED, non-empty
        description: Show the working tree status    # REQUIRED, non-empty
` + "```" + `

## Rules

1. **` + "`" + `title` + "`" + ` is required.** It is the display heading of the sheet.
2. **Sheet names** identify sheets in URLs and on disk: letters, digits,
   hyphen, and underscore only (` + "`" + `[A-Za-z0-9_-]` + "`" + `), at most 250 bytes. No dots,
   slashes, or spaces. The name is passed separately from the document.
3. **Order is preserved.** Categories and items render exactly in document
   order; there is no implicit sorting.
4. **` + "`" + `columns` + "`" + `** sets the page layout; omit it for a single column. A
   category's optional ` + "`" + `column` + "`" + ` pins it to one of those columns.
5. **Unknown fields are rejected.** Only the keys shown above are accepted.
6. **Every item needs both fields.** ` + "`" + `command` + "`" + ` and ` + "`" + `description` + "`" + ` must be
   non-empty strings.

## Example

` + "```" + `yaml
title: Git Commands
columns: 2
categories:
  - name: Branching
    items:
      - command: git switch -c <name>
        description: Create and switch to a new branch
      - command: git branch -d <name>
        description: Delete a merged branch
  - name: Stashing
    column: 2
    items:
      - command: git stash
        description: Shelve local changes
      - command: git stash pop
        description: Restore the most recent stash
` + "```" + `
`
